package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue is a single validation finding. Path names the flag it concerns.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements error so an Issue can be returned directly.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

var knownWarehouses = map[string]struct{}{
	"sqlite": {}, "sqlite3": {}, "postgres": {}, "mssql": {}, "mysql": {},
}

// Validate checks c and returns every issue found. It does not mutate c.
func Validate(c *Config) []Issue {
	var issues []Issue
	add := func(sev IssueSeverity, path, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	kind := strings.TrimSpace(c.WarehouseKind)
	_, known := knownWarehouses[kind]
	switch {
	case kind == "":
		add(SeverityError, "warehouse", "warehouse kind must not be empty")
	case !known:
		add(SeverityError, "warehouse", "unknown warehouse kind %q", kind)
	}

	if c.IsSQLite() {
		if strings.TrimSpace(c.WarehouseDSN()) == "" {
			add(SeverityError, "dw_path", "SQLite warehouse path must not be empty")
		}
		if c.DSN != "" && c.DWPath != "" && c.DSN != c.DWPath {
			add(SeverityWarning, "dsn", "dsn %q overrides dw_path %q", c.DSN, c.DWPath)
		}
	} else if known && strings.TrimSpace(c.DSN) == "" {
		add(SeverityError, "dsn", "warehouse %q requires a DSN", kind)
	}

	if strings.TrimSpace(c.PreparedDir) == "" {
		add(SeverityError, "prepared_dir", "prepared data directory must not be empty")
	}
	if strings.TrimSpace(c.ResultsDir) == "" {
		add(SeverityError, "results_dir", "results directory must not be empty")
	}
	if strings.TrimSpace(c.DateLayout) == "" {
		add(SeverityError, "date_layout", "date layout must not be empty")
	}

	switch c.Engine {
	case EngineDataframe, EngineSQL:
	default:
		add(SeverityError, "engine", "unknown aggregation engine %q (want %s or %s)", c.Engine, EngineDataframe, EngineSQL)
	}

	switch c.MetricsBackend {
	case "", MetricsNone:
	case MetricsPrometheus:
		if strings.TrimSpace(c.PushgatewayURL) == "" {
			add(SeverityError, "pushgateway_url", "prometheus metrics require a Pushgateway URL")
		}
	case MetricsDatadog:
		if strings.TrimSpace(c.DogStatsdAddr) == "" {
			add(SeverityError, "dogstatsd_addr", "datadog metrics require a DogStatsD address")
		}
	default:
		add(SeverityError, "metrics_backend", "unknown metrics backend %q", c.MetricsBackend)
	}

	return issues
}

// HasErrors reports whether issues contains at least one SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}
