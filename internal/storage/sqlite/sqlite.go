// Package sqlite wires the single-file SQLite warehouse into the storage
// package. Two kinds are registered:
//
//   - "sqlite":  pure-Go driver (modernc.org/sqlite), the default
//   - "sqlite3": cgo driver (github.com/mattn/go-sqlite3)
//
// Both share the DDL builder in internal/storage/sqlite/ddl. The DSN is the
// path of the warehouse file.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"smartsales/internal/storage"
	sqliteddl "smartsales/internal/storage/sqlite/ddl"
)

const listTablesSQL = `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`

// prepare keeps declared references unenforced: a sale may point at a
// customer or product that was never loaded.
func prepare(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "PRAGMA foreign_keys = OFF;")
	return err
}

func dialect(kind, driver string) storage.Dialect {
	return storage.Dialect{
		Kind:        kind,
		Driver:      driver,
		MapType:     sqliteddl.MapType,
		CreateTable: sqliteddl.BuildCreateTableSQL,
		QuoteIdent:  sqliteddl.QuoteIdent,
		ListTables:  listTablesSQL,
		Prepare:     prepare,
	}
}

func init() {
	// sqlx knows "sqlite3" but not the modernc driver name.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)

	storage.Register(dialect("sqlite", "sqlite"))
	storage.Register(dialect("sqlite3", "sqlite3"))
}
