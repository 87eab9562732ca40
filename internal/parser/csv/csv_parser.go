// Package csv parses prepared CSV extracts into records keyed by header.
//
// Parsing is strict: every data row must have as many fields as the header,
// and a malformed row aborts the parse with its line number. A UTF-8 byte
// order mark is consumed and header cells are trimmed and NFC-normalized, so
// spreadsheet exports match the column names the warehouse mapping expects.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"smartsales/internal/parser"
	"smartsales/pkg/records"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("csv: empty input")

// Options configures the parser. The zero value parses comma-separated input
// without trimming field values.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading and trailing white space from field values.
	TrimSpace bool
}

// Parser parses CSV input according to Options.
type Parser struct{ opt Options }

var _ parser.Parser = (*Parser)(nil)

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the header and every data row from r. Empty cells become nil;
// all other cells are kept as strings.
func (p *Parser) Parse(r io.Reader) ([]string, []records.Record, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.ReuseRecord = true

	raw, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmpty
	}
	if err != nil {
		return nil, nil, fmt.Errorf("csv: read header: %w", err)
	}
	header := NormalizeHeader(raw)

	var out []records.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// *csv.ParseError carries the line and column.
			return nil, nil, fmt.Errorf("csv: %w", err)
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[header[i]] = emptyToNil(val)
		}
		out = append(out, rec)
	}
	return header, out, nil
}

// NormalizeHeader trims each header cell and converts it to Unicode NFC.
func NormalizeHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = norm.NFC.String(strings.TrimSpace(c))
	}
	return out
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
