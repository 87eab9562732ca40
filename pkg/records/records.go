// Package records defines the loosely-typed row shape passed between the
// parser and transformer stages of the load pipeline.
package records

// Record is a single parsed row keyed by column name. Values are nil for
// empty cells, raw strings straight out of the parser, or typed values once a
// coercion step has run.
type Record map[string]any

// Values returns the values of r in the order given by columns. Columns that
// are absent from r yield nil.
func (r Record) Values(columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = r[c]
	}
	return out
}

// Rows converts recs into positional rows aligned to columns, the shape the
// storage layer inserts.
func Rows(recs []Record, columns []string) [][]any {
	out := make([][]any, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Values(columns))
	}
	return out
}
