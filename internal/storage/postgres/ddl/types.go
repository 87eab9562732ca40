package ddl

import "strings"

var pgTypes = map[string]string{
	"int":     "BIGINT",
	"integer": "BIGINT",
	"bigint":  "BIGINT",
	"decimal": "NUMERIC(18, 2)",
	"numeric": "NUMERIC(18, 2)",
	"date":    "DATE",
	"text":    "TEXT",
}

// MapType maps a warehouse column type (int, text, date, decimal) to its
// Postgres type. Unknown types become TEXT.
func MapType(kind string) string {
	if t, ok := pgTypes[strings.ToLower(strings.TrimSpace(kind))]; ok {
		return t
	}
	return "TEXT"
}
