// Package storage opens the relational warehouse and performs every SQL
// operation the pipelines need: schema bootstrap, the full-replace load, table
// listing, typed reads and content fingerprints.
//
// SQL differences between engines are confined to a Dialect. Backend packages
// (sqlite, postgres, mssql, mysql) register their dialect at init time;
// importing internal/storage/all enables every built-in backend.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"

	"smartsales/internal/ddl"
)

// ErrUnknownKind is returned by Open when no dialect is registered for the
// requested warehouse kind.
var ErrUnknownKind = errors.New("storage: unknown warehouse kind")

// Config selects and addresses the warehouse.
type Config struct {
	// Kind selects the registered dialect, e.g. "sqlite" or "postgres".
	Kind string

	// DSN is passed to the database/sql driver. For SQLite it is the path of
	// the warehouse file.
	DSN string
}

// Dialect captures everything that differs between warehouse engines.
type Dialect struct {
	// Kind is the name callers use in Config.Kind.
	Kind string

	// Driver is the database/sql driver name.
	Driver string

	// MapType maps a logical column type to the engine's SQL type.
	MapType func(kind string) string

	// CreateTable renders an idempotent CREATE TABLE for a resolved TableDef.
	CreateTable func(t ddl.TableDef) (string, error)

	// QuoteIdent quotes a single identifier.
	QuoteIdent func(id string) string

	// ListTables is a query returning one column holding user table names.
	ListTables string

	// Prepare optionally runs once on a freshly opened handle.
	Prepare func(ctx context.Context, db *sql.DB) error
}

var (
	mu       sync.RWMutex
	dialects = map[string]Dialect{}
)

// Register registers (or replaces) the dialect for d.Kind. It is typically
// called from backend packages' init() functions.
func Register(d Dialect) {
	mu.Lock()
	defer mu.Unlock()
	dialects[d.Kind] = d
}

// Lookup returns the dialect registered for kind.
func Lookup(kind string) (Dialect, error) {
	mu.RLock()
	d, ok := dialects[kind]
	mu.RUnlock()
	if !ok {
		return Dialect{}, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownKind, kind, Kinds())
	}
	return d, nil
}

// Kinds lists the registered warehouse kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(dialects))
	for k := range dialects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
