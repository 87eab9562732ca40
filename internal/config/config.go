// Package config centralizes the pipelines' configuration. Every tunable is a
// command-line flag whose default is seeded from an environment variable, so
// both binaries run with no arguments and can still be redirected per
// environment.
//
// Typical usage:
//
//	cfg, err := config.Load() // .env, os.Environ, os.Args
//
// Tests should use LoadFromArgs with a private FlagSet and a map-backed
// getenv to stay hermetic.
package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Aggregation engines.
const (
	EngineDataframe = "dataframe"
	EngineSQL       = "sql"
)

// Metrics backends.
const (
	MetricsNone       = "none"
	MetricsPrometheus = "prometheus"
	MetricsDatadog    = "datadog"
)

// Config holds all process configuration derived from flags and environment
// variables. It is a plain value and safe to copy after construction.
type Config struct {
	// Warehouse selection. For the SQLite kinds the DSN defaults to DWPath.
	WarehouseKind string
	DWPath        string
	DSN           string

	// Pipeline directories.
	PreparedDir string
	ResultsDir  string

	// DateLayout is the layout of dates in the prepared CSVs.
	DateLayout string

	// Aggregation and reporting.
	Engine    string
	ShowChart bool

	// Metrics.
	MetricsBackend string
	PushgatewayURL string
	DogStatsdAddr  string

	Verbose bool
}

// LoadFromArgs defines flags on fs, seeds each default from getenv and parses
// args. Explicit flags override environment values.
func LoadFromArgs(fs *flag.FlagSet, getenv func(string) string, args []string) (*Config, error) {
	cfg := &Config{}

	envOr := func(k, d string) string {
		if v := getenv(k); v != "" {
			return v
		}
		return d
	}
	boolEnvOr := func(k string, d bool) bool {
		switch strings.ToLower(strings.TrimSpace(getenv(k))) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
		return d
	}

	fs.StringVar(&cfg.WarehouseKind, "warehouse", envOr("WAREHOUSE_KIND", "sqlite"), "Warehouse kind: sqlite, sqlite3, postgres, mssql or mysql")
	fs.StringVar(&cfg.DWPath, "dw_path", envOr("DW_PATH", filepath.Join("data", "dw", "smart_sales.db")), "SQLite warehouse file")
	fs.StringVar(&cfg.DSN, "dsn", getenv("WAREHOUSE_DSN"), "Warehouse DSN (defaults to -dw_path for SQLite)")

	fs.StringVar(&cfg.PreparedDir, "prepared_dir", envOr("PREPARED_DATA_DIR", filepath.Join("data", "prepared")), "Directory holding the prepared CSV inputs")
	fs.StringVar(&cfg.ResultsDir, "results_dir", envOr("RESULTS_DIR", filepath.Join("data", "results")), "Directory for charts and exported results")
	fs.StringVar(&cfg.DateLayout, "date_layout", envOr("DATE_LAYOUT", "2006-01-02"), "Go time layout of dates in the prepared CSVs")

	fs.StringVar(&cfg.Engine, "engine", envOr("AGG_ENGINE", EngineDataframe), "Aggregation engine: dataframe or sql")
	fs.BoolVar(&cfg.ShowChart, "show", boolEnvOr("SHOW_CHART", true), "Open the chart in a viewer when running in a terminal")

	fs.StringVar(&cfg.MetricsBackend, "metrics_backend", envOr("METRICS_BACKEND", MetricsNone), "Metrics backend: none, prometheus or datadog")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway_url", envOr("PUSHGATEWAY_URL", "http://localhost:9091"), "Prometheus Pushgateway URL")
	fs.StringVar(&cfg.DogStatsdAddr, "dogstatsd_addr", envOr("DOGSTATSD_ADDR", "127.0.0.1:8125"), "DogStatsD address")

	fs.BoolVar(&cfg.Verbose, "v", boolEnvOr("VERBOSE", false), "Verbose (debug) logging")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom is LoadFromArgs without extra arguments.
func LoadFrom(fs *flag.FlagSet, getenv func(string) string) (*Config, error) {
	return LoadFromArgs(fs, getenv, nil)
}

// Load is the production entry point. Variables from a .env file in the
// working directory are added to the process environment (existing variables
// win), then flags are parsed from os.Args[1:].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return LoadFromArgs(flag.CommandLine, os.Getenv, os.Args[1:])
}

// IsSQLite reports whether the warehouse is one of the file-backed kinds.
func (c *Config) IsSQLite() bool {
	return c.WarehouseKind == "sqlite" || c.WarehouseKind == "sqlite3"
}

// WarehouseDSN returns the DSN to open. SQLite kinds fall back to DWPath.
func (c *Config) WarehouseDSN() string {
	if c.DSN == "" && c.IsSQLite() {
		return c.DWPath
	}
	return c.DSN
}

// WarehouseDir is the directory that must exist before the warehouse is
// opened: the parent of the SQLite file, or "" for server databases.
func (c *Config) WarehouseDir() string {
	if !c.IsSQLite() {
		return ""
	}
	return filepath.Dir(c.WarehouseDSN())
}
