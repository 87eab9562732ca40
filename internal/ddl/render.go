// Package ddl defines a small, backend-agnostic model for SQL DDL plus the
// column rendering shared by the dialect-specific builders under
// internal/storage/*/ddl.
//
// Backends own identifier quoting and the statement wrapper (IF NOT EXISTS,
// IF OBJECT_ID guards, reference clauses); this package only renders the
// column list and PRIMARY KEY clause they have in common.
package ddl

import (
	"fmt"
	"strings"
)

// ColumnClauses validates t and renders one clause per column followed by a
// PRIMARY KEY clause when any column is marked as part of the key. Columns are
// rendered as:
//
//	<quoted name> <SQLType> [NOT NULL] [DEFAULT <Default>]
//
// Primary-key columns are always NOT NULL. prefix labels errors (e.g.
// "sqlite ddl").
func ColumnClauses(t TableDef, quote func(string) string, prefix string) ([]string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return nil, fmt.Errorf("%s: table FQN must not be empty", prefix)
	}
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("%s: at least one column is required", prefix)
	}

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, 1)

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: column with empty name in table %s", prefix, fqn)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return nil, fmt.Errorf("%s: column %s missing SQLType", prefix, name)
		}

		var sb strings.Builder
		sb.WriteString(quote(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable || c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}
		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}
		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, quote(name))
		}
	}

	if len(pks) > 0 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}
	return cols, nil
}

// QuoteFQN splits a dotted name and quotes each non-empty segment with quote.
//
//	"main.events" -> "main"."events"   (with double-quote quoting)
func QuoteFQN(fqn string, quote func(string) string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quote(p))
	}
	return strings.Join(out, ".")
}
