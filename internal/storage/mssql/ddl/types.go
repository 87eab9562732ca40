// Package ddl builds SQL Server DDL for the warehouse tables.
package ddl

import (
	"strings"

	"smartsales/internal/schema"
)

// MapType returns the SQL Server column type for a warehouse column type.
// Amounts keep ten fractional digits; text and unknown types are NVARCHAR(MAX).
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case schema.TypeInt, "integer", "bigint":
		return "BIGINT"
	case schema.TypeDecimal, "numeric":
		return "DECIMAL(38, 10)"
	case schema.TypeDate:
		return "DATE"
	}
	return "NVARCHAR(MAX)"
}
