// Package mysql registers a MySQL warehouse ("mysql") using
// github.com/go-sql-driver/mysql. The DSN uses the driver's
// user:pass@tcp(host:3306)/smart_sales form.
package mysql

import (
	_ "github.com/go-sql-driver/mysql"

	"smartsales/internal/storage"
	myddl "smartsales/internal/storage/mysql/ddl"
)

const listTablesSQL = `SELECT table_name FROM information_schema.tables
WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
ORDER BY table_name`

func init() {
	storage.Register(storage.Dialect{
		Kind:        "mysql",
		Driver:      "mysql",
		MapType:     myddl.MapType,
		CreateTable: myddl.BuildCreateTableSQL,
		QuoteIdent:  myddl.QuoteIdent,
		ListTables:  listTablesSQL,
	})
}
