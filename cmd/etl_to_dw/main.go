// Command etl_to_dw loads the prepared customer, product and sales extracts
// into the Smart Sales warehouse, replacing its previous contents.
package main

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"

	"smartsales/internal/app"
	"smartsales/internal/config"
	"smartsales/internal/loader"
	"smartsales/internal/logging"
	"smartsales/internal/storage"

	// Register every warehouse backend; config selects one.
	_ "smartsales/internal/storage/all"
)

const jobName = "etl_to_dw"

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

	logging.Infof("%s: starting run_id=%s prepared=%s warehouse=%s", jobName, runID, cfg.PreparedDir, cfg.WarehouseKind)
	sum, err := loader.Run(ctx, loader.Options{
		PreparedDir:  cfg.PreparedDir,
		WarehouseDir: cfg.WarehouseDir(),
		Storage:      storage.Config{Kind: cfg.WarehouseKind, DSN: cfg.WarehouseDSN()},
		DateLayout:   cfg.DateLayout,
		Job:          jobName,
	})
	if err != nil {
		return err
	}
	for _, t := range sum.Tables {
		logging.Debugf("%s: table=%s rows=%d", jobName, t.Table, t.Rows)
	}
	logging.Infof("%s: done run_id=%s tables=%d elapsed=%s", jobName, runID, len(sum.Tables), sum.Elapsed)
	return nil
}
