// Package transformer defines record-slice transformations applied between
// parsing and loading.
package transformer

import "smartsales/pkg/records"

// Transformer rewrites a batch of records. Implementations may mutate the
// records in place and return the same slice.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs every transformer in order, feeding each the previous output.
func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
