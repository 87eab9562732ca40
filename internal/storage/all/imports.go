// Package all wires every built-in warehouse backend into the storage
// registry. Import it for side effects:
//
//	import _ "smartsales/internal/storage/all"
//
// after which storage.Open accepts the kinds "sqlite", "sqlite3",
// "postgres", "mssql" and "mysql".
package all

import (
	_ "smartsales/internal/storage/mssql"
	_ "smartsales/internal/storage/mysql"
	_ "smartsales/internal/storage/postgres"
	_ "smartsales/internal/storage/sqlite"
)
