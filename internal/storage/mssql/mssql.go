// Package mssql registers a SQL Server warehouse ("mssql") using the
// github.com/microsoft/go-mssqldb driver. The DSN is a sqlserver:// URL.
package mssql

import (
	_ "github.com/microsoft/go-mssqldb"

	"smartsales/internal/storage"
	msddl "smartsales/internal/storage/mssql/ddl"
)

const listTablesSQL = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_SCHEMA = SCHEMA_NAME()
ORDER BY TABLE_NAME`

func init() {
	storage.Register(storage.Dialect{
		Kind:        "mssql",
		Driver:      "sqlserver",
		MapType:     msddl.MapType,
		CreateTable: msddl.BuildCreateTableSQL,
		QuoteIdent:  msddl.QuoteIdent,
		ListTables:  listTablesSQL,
	})
}
