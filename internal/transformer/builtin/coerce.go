package builtin

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"smartsales/pkg/records"
)

// Coerce converts string values to their warehouse types. Types maps a field
// to one of "int", "decimal", "date" or "text". Values that do not parse are
// left unchanged; nil stays nil.
type Coerce struct {
	Types map[string]string

	// Layout is the input layout of date fields. Dates that parse are
	// rewritten as YYYY-MM-DD. Defaults to time.DateOnly.
	Layout string
}

func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	layout := c.Layout
	if layout == "" {
		layout = time.DateOnly
	}
	for _, r := range in {
		for field, typ := range c.Types {
			s, ok := r[field].(string)
			if !ok {
				continue
			}
			switch typ {
			case "int":
				if i, err := strconv.ParseInt(s, 10, 64); err == nil {
					r[field] = i
				}
			case "decimal":
				if d, err := decimal.NewFromString(s); err == nil {
					r[field] = d
				}
			case "date":
				if t, err := time.Parse(layout, s); err == nil {
					r[field] = t.Format(time.DateOnly)
				}
			}
		}
	}
	return in
}
