// Package app holds the start-up sequence shared by the binaries: config
// validation, logging and metrics backend selection.
package app

import (
	"errors"
	"fmt"
	"io"
	"log"

	"smartsales/internal/config"
	"smartsales/internal/logging"
	"smartsales/internal/metrics"
	"smartsales/internal/metrics/datadog"
	"smartsales/internal/metrics/prompush"
)

// ErrInvalidConfig is returned by Start when validation reports an error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Start validates cfg, writing every issue to stderr, configures logging and
// installs the metrics backend. The returned stop func flushes metrics and
// must be called once the job is done.
func Start(job, runID string, cfg *config.Config, stderr io.Writer) (stop func(), err error) {
	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return func() {}, ErrInvalidConfig
	}

	logging.Setup(stderr, cfg.Verbose)
	logging.Debugf("%s: run_id=%s warehouse=%s engine=%s", job, runID, cfg.WarehouseKind, cfg.Engine)
	return installMetrics(job, runID, cfg), nil
}

func installMetrics(job, runID string, cfg *config.Config) func() {
	var (
		b   metrics.Backend
		err error
	)
	switch cfg.MetricsBackend {
	case config.MetricsPrometheus:
		b, err = prompush.NewBackend(job, runID, cfg.PushgatewayURL)
		if err == nil {
			log.Printf("metrics: backend=%s url=%s job=%s", cfg.MetricsBackend, cfg.PushgatewayURL, job)
		}
	case config.MetricsDatadog:
		b, err = datadog.NewBackend(datadog.Config{
			Addr:      cfg.DogStatsdAddr,
			Namespace: "smartsales.",
			Tags:      []string{"job:" + job, "run_id:" + runID},
		})
		if err == nil {
			log.Printf("metrics: backend=%s addr=%s job=%s", cfg.MetricsBackend, cfg.DogStatsdAddr, job)
		}
	default:
		logging.Debugf("metrics: disabled (backend=%q)", cfg.MetricsBackend)
		return func() {}
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", cfg.MetricsBackend, err)
		return func() {}
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}
