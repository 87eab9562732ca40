package ddl

import (
	"strings"

	"smartsales/internal/schema"
)

// MapType returns the SQLite column type for a warehouse column type. Amounts
// use REAL affinity; dates stay ISO-8601 TEXT.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case schema.TypeInt, "integer", "bigint":
		return "INTEGER"
	case schema.TypeDecimal, "numeric", "real":
		return "REAL"
	}
	return "TEXT"
}
