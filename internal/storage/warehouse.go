package storage

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zeebo/xxh3"

	"smartsales/internal/ddl"
)

// Warehouse is an open connection to the warehouse database. It holds a single
// connection; callers open it, use it and Close it within one job run.
type Warehouse struct {
	db      *sqlx.DB
	dialect Dialect
}

// TableLoad is the full content of one warehouse table for a replace-all load.
// Rows are aligned to Columns.
type TableLoad struct {
	Table   string
	Columns []string
	Rows    [][]any
}

// Open connects to the warehouse described by cfg and verifies the connection
// with a ping.
func Open(ctx context.Context, cfg Config) (*Warehouse, error) {
	d, err := Lookup(cfg.Kind)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("storage: %s: DSN must not be empty", cfg.Kind)
	}

	db, err := sqlx.Open(d.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: %s: open: %w", cfg.Kind, err)
	}
	// One writer, one connection for the whole job.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %s: ping: %w", cfg.Kind, err)
	}

	if d.Prepare != nil {
		if err := d.Prepare(ctx, db.DB); err != nil {
			db.Close()
			return nil, fmt.Errorf("storage: %s: prepare: %w", cfg.Kind, err)
		}
	}
	return &Warehouse{db: db, dialect: d}, nil
}

// Close releases the connection.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// Kind reports the dialect kind the warehouse was opened with.
func (w *Warehouse) Kind() string { return w.dialect.Kind }

// EnsureSchema creates every table in defs that does not exist yet. Logical
// column types are mapped through the dialect first. Existing tables are left
// untouched.
func (w *Warehouse) EnsureSchema(ctx context.Context, defs []ddl.TableDef) error {
	for _, def := range defs {
		stmt, err := w.dialect.CreateTable(ddl.Resolve(def, w.dialect.MapType))
		if err != nil {
			return fmt.Errorf("storage: build ddl for %s: %w", def.FQN, err)
		}
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("storage: create table %s: %w", def.FQN, err)
		}
	}
	return nil
}

// ReplaceAll empties every table named in loads and inserts the new rows, all
// in one transaction. Tables are cleared in reverse order and filled in the
// given order, so loads should list referenced tables first. On any error the
// transaction is rolled back and the previous contents survive.
//
// It returns the number of rows inserted per table.
func (w *Warehouse) ReplaceAll(ctx context.Context, loads []TableLoad) (map[string]int64, error) {
	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := len(loads) - 1; i >= 0; i-- {
		q := "DELETE FROM " + w.quoteFQN(loads[i].Table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return nil, fmt.Errorf("storage: delete %s: %w", loads[i].Table, err)
		}
	}

	counts := make(map[string]int64, len(loads))
	for _, l := range loads {
		n, err := w.insert(ctx, tx, l)
		if err != nil {
			return nil, err
		}
		counts[l.Table] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: commit: %w", err)
	}
	return counts, nil
}

// insert writes l.Rows with a prepared single-row INSERT.
func (w *Warehouse) insert(ctx context.Context, tx *sqlx.Tx, l TableLoad) (int64, error) {
	if len(l.Columns) == 0 {
		return 0, fmt.Errorf("storage: insert %s: columns must not be empty", l.Table)
	}
	if len(l.Rows) == 0 {
		return 0, nil
	}

	quoted := make([]string, len(l.Columns))
	placeholders := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		quoted[i] = w.dialect.QuoteIdent(c)
		placeholders[i] = "?"
	}
	q := tx.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		w.quoteFQN(l.Table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	))

	stmt, err := tx.PreparexContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("storage: prepare insert %s: %w", l.Table, err)
	}
	defer stmt.Close()

	var inserted int64
	for i, row := range l.Rows {
		if len(row) != len(l.Columns) {
			return inserted, fmt.Errorf("storage: insert %s: row %d length %d != columns length %d",
				l.Table, i+1, len(row), len(l.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return inserted, fmt.Errorf("storage: insert %s row %d: %w", l.Table, i+1, err)
		}
		inserted++
	}
	log.Printf("storage: table=%s inserted=%d", l.Table, inserted)
	return inserted, nil
}

// ListTables returns the names of the user tables in the warehouse.
func (w *Warehouse) ListTables(ctx context.Context) ([]string, error) {
	var names []string
	if err := w.db.SelectContext(ctx, &names, w.dialect.ListTables); err != nil {
		return nil, fmt.Errorf("storage: list tables: %w", err)
	}
	return names, nil
}

// Count returns the number of rows in table.
func (w *Warehouse) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := w.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+w.quoteFQN(table)); err != nil {
		return 0, fmt.Errorf("storage: count %s: %w", table, err)
	}
	return n, nil
}

// Fingerprint hashes the full content of def's table with xxh3. Rows are read
// in primary-key order so equal content always yields the same value.
func (w *Warehouse) Fingerprint(ctx context.Context, def ddl.TableDef) (uint64, error) {
	cols := w.quoteAll(def.ColumnNames())
	order := w.quoteAll(def.PrimaryKey())
	if len(order) == 0 {
		order = cols
	}
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(cols, ", "), w.quoteFQN(def.FQN), strings.Join(order, ", "))

	rows, err := w.db.QueryContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("storage: fingerprint %s: %w", def.FQN, err)
	}
	defer rows.Close()

	h := xxh3.New()
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return 0, fmt.Errorf("storage: fingerprint %s: scan: %w", def.FQN, err)
		}
		for _, v := range vals {
			switch x := v.(type) {
			case nil:
				h.WriteString("\x00")
			case []byte:
				h.Write(x)
			case string:
				h.WriteString(x)
			default:
				h.WriteString(fmt.Sprint(x))
			}
			h.WriteString("\x1f")
		}
		h.WriteString("\x1e")
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("storage: fingerprint %s: %w", def.FQN, err)
	}
	return h.Sum64(), nil
}

// Select runs query (written with ? placeholders) and scans all rows into
// dest, a pointer to a slice.
func (w *Warehouse) Select(ctx context.Context, dest any, query string, args ...any) error {
	return w.db.SelectContext(ctx, dest, w.db.Rebind(query), args...)
}

func (w *Warehouse) quoteFQN(name string) string {
	return ddl.QuoteFQN(name, w.dialect.QuoteIdent)
}

func (w *Warehouse) quoteAll(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = w.dialect.QuoteIdent(id)
	}
	return out
}
