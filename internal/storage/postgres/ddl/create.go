// Package ddl contains Postgres-specific helpers for generating DDL.
//
// It builds CREATE TABLE statements for a generic ddl.TableDef, using
// Postgres-style quoting (double-quoted identifiers, escaped quotes, etc.).
package ddl

import (
	"fmt"
	"strings"

	gddl "smartsales/internal/ddl"
)

// BuildCreateTableSQL builds a deterministic Postgres CREATE TABLE statement
// for the given table definition.
//
// Rules:
//   - t.FQN (fully-qualified table name) must be non-empty.
//   - Each column must have a non-empty Name and SQLType.
//   - Primary-key columns are always rendered as NOT NULL.
//   - Foreign keys are not rendered: Postgres always enforces them, and sales
//     may reference customers or products that were never loaded.
//   - The statement uses CREATE TABLE IF NOT EXISTS.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.ColumnClauses(t, QuoteIdent, "postgres ddl")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		gddl.QuoteFQN(strings.TrimSpace(t.FQN), QuoteIdent),
		strings.Join(cols, ",\n  "),
	), nil
}

// QuoteIdent quotes a single identifier segment for Postgres, e.g.:
//
//	QuoteIdent(`region`)     => `"region"`
//	QuoteIdent(`weird"name`) => `"weird""name"`
func QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
