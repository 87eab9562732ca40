// Package ddl builds MySQL CREATE TABLE statements from ddl.TableDef.
// Identifiers are backtick-quoted and foreign keys are not rendered, since
// InnoDB enforces them.
package ddl

import (
	"fmt"
	"strings"

	gddl "smartsales/internal/ddl"
)

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	cols, err := gddl.ColumnClauses(t, QuoteIdent, "mysql ddl")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n)",
		gddl.QuoteFQN(strings.TrimSpace(t.FQN), QuoteIdent),
		strings.Join(cols, ",\n  "),
	), nil
}

// QuoteIdent wraps id in backticks, doubling embedded backticks.
func QuoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

// MapType maps a logical type to a MySQL column type. Unknown kinds become
// TEXT.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "BIGINT"
	case "bool", "boolean":
		return "BOOLEAN"
	case "decimal", "numeric":
		return "DECIMAL(18, 2)"
	case "date":
		return "DATE"
	case "timestamp", "datetime":
		return "DATETIME"
	default:
		return "TEXT"
	}
}
