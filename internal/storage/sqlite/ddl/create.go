// Package ddl provides SQLite-specific helpers for generating CREATE TABLE
// statements from the generic ddl.TableDef model.
//
// The builder here:
//   - Uses simple double-quoted identifiers: "table", "col".
//   - Emits CREATE TABLE IF NOT EXISTS.
//   - Renders PRIMARY KEY and FOREIGN KEY as separate table constraints.
//
// Foreign keys are declared but SQLite only enforces them when the
// foreign_keys pragma is on; the warehouse keeps it off.
package ddl

import (
	"fmt"
	"strings"

	gddl "smartsales/internal/ddl"
)

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for the given
// table definition. The statement has the form:
//
//	CREATE TABLE IF NOT EXISTS "sales" (
//	  "transaction_id" INTEGER NOT NULL,
//	  "customer_id" INTEGER,
//	  PRIMARY KEY ("transaction_id"),
//	  FOREIGN KEY ("customer_id") REFERENCES "customers" ("customer_id")
//	);
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.ColumnClauses(t, QuoteIdent, "sqlite ddl")
	if err != nil {
		return "", err
	}

	for _, fk := range t.ForeignKeys {
		if fk.Column == "" || fk.RefTable == "" || fk.RefColumn == "" {
			return "", fmt.Errorf("sqlite ddl: incomplete foreign key %+v in table %s", fk, t.FQN)
		}
		cols = append(cols, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			QuoteIdent(fk.Column), gddl.QuoteFQN(fk.RefTable, QuoteIdent), QuoteIdent(fk.RefColumn)))
	}

	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		gddl.QuoteFQN(strings.TrimSpace(t.FQN), QuoteIdent),
		strings.Join(cols, ",\n  "),
	), nil
}

// QuoteIdent double-quotes id, escaping embedded quotes.
func QuoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
