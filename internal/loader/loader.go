// Package loader implements the full-replace warehouse load: it bootstraps
// the schema, reads the three prepared CSV extracts, maps their columns onto
// the warehouse tables and replaces the contents of every table in one
// transaction.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"smartsales/internal/datasource"
	"smartsales/internal/datasource/file"
	"smartsales/internal/metrics"
	"smartsales/internal/parser"
	pcsv "smartsales/internal/parser/csv"
	"smartsales/internal/schema"
	"smartsales/internal/storage"
	"smartsales/internal/transformer"
	"smartsales/internal/transformer/builtin"
	"smartsales/pkg/records"
)

// ErrMissingInput is returned when a prepared input file does not exist.
var ErrMissingInput = errors.New("missing input")

// Options configures a load run.
type Options struct {
	// PreparedDir holds customers_data_prepared.csv, products_data_prepared.csv
	// and sales_data_prepared.csv.
	PreparedDir string

	// WarehouseDir is created before the warehouse is opened. Empty for
	// server databases.
	WarehouseDir string

	Storage storage.Config

	// DateLayout is the layout of date cells in the inputs; empty means
	// YYYY-MM-DD.
	DateLayout string

	// Job labels metrics.
	Job string
}

// TableSummary describes one loaded table.
type TableSummary struct {
	Table       string
	Rows        int64
	Fingerprint uint64
}

// Summary is the outcome of a successful Run.
type Summary struct {
	Tables  []TableSummary
	Elapsed time.Duration
}

// Run performs one full-replace load. The previous warehouse contents survive
// any failure.
func Run(ctx context.Context, opt Options) (Summary, error) {
	start := time.Now()

	if opt.WarehouseDir != "" {
		if err := os.MkdirAll(opt.WarehouseDir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("loader: create warehouse dir: %w", err)
		}
	}

	w, err := storage.Open(ctx, opt.Storage)
	if err != nil {
		return Summary{}, fmt.Errorf("loader: %w", err)
	}
	defer w.Close()

	tables := schema.Tables()

	err = step(opt.Job, "ensure_schema", func() error {
		return w.EnsureSchema(ctx, schema.Defs())
	})
	if err != nil {
		return Summary{}, fmt.Errorf("loader: %w", err)
	}

	var loads []storage.TableLoad
	err = step(opt.Job, "read_inputs", func() error {
		var rerr error
		loads, rerr = readInputs(ctx, opt, tables)
		return rerr
	})
	if err != nil {
		return Summary{}, fmt.Errorf("loader: %w", err)
	}

	var counts map[string]int64
	err = step(opt.Job, "replace_all", func() error {
		var rerr error
		counts, rerr = w.ReplaceAll(ctx, loads)
		return rerr
	})
	if err != nil {
		return Summary{}, fmt.Errorf("loader: %w", err)
	}

	sum := Summary{Tables: make([]TableSummary, 0, len(tables))}
	for _, t := range tables {
		fp, err := w.Fingerprint(ctx, t.Def())
		if err != nil {
			return Summary{}, fmt.Errorf("loader: %w", err)
		}
		sum.Tables = append(sum.Tables, TableSummary{Table: t.Name, Rows: counts[t.Name], Fingerprint: fp})
		metrics.RecordRows(opt.Job, t.Name, counts[t.Name])
		log.Printf("loader: table=%s rows=%d fingerprint=%016x", t.Name, counts[t.Name], fp)
	}
	sum.Elapsed = time.Since(start)

	log.Printf("loader: data successfully loaded into %s warehouse in %s", w.Kind(), sum.Elapsed.Truncate(time.Millisecond))
	return sum, nil
}

func step(job, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, name, err, time.Since(start))
	return err
}

// readInputs reads every table's prepared file concurrently. The result is
// in the order of tables.
func readInputs(ctx context.Context, opt Options, tables []schema.Table) ([]storage.TableLoad, error) {
	loads := make([]storage.TableLoad, len(tables))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			p := pcsv.NewParser(pcsv.Options{})
			l, err := readTable(gctx, file.InDir(opt.PreparedDir, t.File), p, t, opt.DateLayout)
			if err != nil {
				return err
			}
			loads[i] = l
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return loads, nil
}

// readTable parses src and maps it onto t: mapped columns are selected by
// header name, renamed and coerced to the warehouse types.
func readTable(ctx context.Context, src datasource.Source, p parser.Parser, t schema.Table, layout string) (storage.TableLoad, error) {
	rc, err := src.Open(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.TableLoad{}, fmt.Errorf("%w: %s", ErrMissingInput, src.Name())
	}
	if err != nil {
		return storage.TableLoad{}, err
	}
	defer rc.Close()

	header, recs, err := p.Parse(rc)
	if err != nil {
		return storage.TableLoad{}, fmt.Errorf("parse %s: %w", src.Name(), err)
	}

	rename := builtin.Rename{Map: make([]builtin.ColumnMap, len(t.Columns))}
	for i, c := range t.Columns {
		rename.Map[i] = builtin.ColumnMap{From: c.Source, To: c.Name}
	}
	if err := rename.Check(header); err != nil {
		return storage.TableLoad{}, fmt.Errorf("%s: %w", src.Name(), err)
	}

	chain := transformer.Chain{
		rename,
		builtin.Normalize{},
		builtin.Coerce{Types: t.Types(), Layout: layout},
	}
	recs = chain.Apply(recs)

	cols := rename.Columns()
	return storage.TableLoad{Table: t.Name, Columns: cols, Rows: records.Rows(recs, cols)}, nil
}
