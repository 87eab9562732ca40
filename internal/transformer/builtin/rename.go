// Package builtin contains the transformers used by the warehouse load.
package builtin

import (
	"errors"
	"fmt"
	"strings"

	"smartsales/pkg/records"
)

// ErrMissingColumns is returned by Rename.Check when the input lacks one or
// more mapped source columns.
var ErrMissingColumns = errors.New("missing columns")

// ColumnMap renames source column From to To.
type ColumnMap struct {
	From string
	To   string
}

// Rename selects the mapped columns of each record and renames them. Columns
// not named in Map are dropped.
type Rename struct {
	Map []ColumnMap
}

// Check reports every mapped source column absent from header.
func (r Rename) Check(header []string) error {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	var missing []string
	for _, m := range r.Map {
		if _, ok := have[m.From]; !ok {
			missing = append(missing, m.From)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// Columns returns the target column names in mapping order.
func (r Rename) Columns() []string {
	out := make([]string, len(r.Map))
	for i, m := range r.Map {
		out[i] = m.To
	}
	return out
}

func (r Rename) Apply(in []records.Record) []records.Record {
	for i, rec := range in {
		out := make(records.Record, len(r.Map))
		for _, m := range r.Map {
			out[m.To] = rec[m.From]
		}
		in[i] = out
	}
	return in
}
