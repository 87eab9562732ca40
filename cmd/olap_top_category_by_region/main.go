// Command olap_top_category_by_region aggregates total sales per customer
// region and product category from the warehouse and charts the result.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"smartsales/internal/app"
	"smartsales/internal/config"
	"smartsales/internal/logging"
	"smartsales/internal/metrics"
	"smartsales/internal/olap"
	"smartsales/internal/report"
	"smartsales/internal/storage"

	// Register every warehouse backend; config selects one.
	_ "smartsales/internal/storage/all"
)

const jobName = "olap_top_category_by_region"

// ErrNoWarehouse is returned when the SQLite warehouse file does not exist.
var ErrNoWarehouse = errors.New("warehouse not found, run etl_to_dw first")

type deps struct {
	loadConfig func() (*config.Config, error)
	newRunID   func() string
	stderr     io.Writer
}

func main() {
	d := deps{loadConfig: config.Load, newRunID: uuid.NewString, stderr: os.Stderr}
	if err := run(context.Background(), d); err != nil {
		logging.Errorf("%s: %v", jobName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, d deps) error {
	cfg, err := d.loadConfig()
	if err != nil {
		return err
	}
	runID := d.newRunID()
	stop, err := app.Start(jobName, runID, cfg, d.stderr)
	defer stop()
	if err != nil {
		return err
	}

	if cfg.IsSQLite() {
		if _, err := os.Stat(cfg.WarehouseDSN()); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoWarehouse, cfg.WarehouseDSN())
		}
	}
	w, err := storage.Open(ctx, storage.Config{Kind: cfg.WarehouseKind, DSN: cfg.WarehouseDSN()})
	if err != nil {
		return err
	}
	defer w.Close()

	tables, err := w.ListTables(ctx)
	if err != nil {
		return err
	}
	logging.Infof("%s: warehouse tables=%v", jobName, tables)

	var rows []olap.CategorySales
	err = step("aggregate", func() error {
		var aerr error
		rows, aerr = olap.Aggregate(ctx, w, cfg.Engine)
		return aerr
	})
	if err != nil {
		return err
	}
	logging.Infof("%s: engine=%s groups=%d\n%s", jobName, cfg.Engine, len(rows), olap.Frame(rows).String())

	var chart string
	err = step("render", func() error {
		var rerr error
		chart, rerr = report.Render(rows, report.Options{Dir: cfg.ResultsDir, Show: cfg.ShowChart})
		if rerr != nil {
			return rerr
		}
		return report.WriteCSV(rows, filepath.Join(cfg.ResultsDir, report.DefaultCSVName))
	})
	if err != nil {
		return err
	}
	logging.Infof("%s: done run_id=%s chart=%s", jobName, runID, chart)
	return nil
}

func step(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(jobName, name, err, time.Since(start))
	return err
}
