// Package parser defines the contract between input decoding and the
// transform stage of the load.
package parser

import (
	"io"

	"smartsales/pkg/records"
)

// Parser decodes r into its normalized header and one record per data row.
type Parser interface {
	Parse(r io.Reader) (header []string, recs []records.Record, err error)
}
