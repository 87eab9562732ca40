package builtin

import (
	"strings"

	"smartsales/pkg/records"
)

// Normalize trims white space (including NO-BREAK SPACE) around string
// values. A value that is blank after trimming becomes nil.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
			if s == "" {
				r[k] = nil
				continue
			}
			r[k] = s
		}
	}
	return in
}
