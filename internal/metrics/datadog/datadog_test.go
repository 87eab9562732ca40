package datadog

import (
	"reflect"
	"testing"

	"smartsales/internal/metrics"
)

func TestTags(t *testing.T) {
	t.Parallel()

	got := tags(metrics.Labels{"step": "load", "job": "etl_to_dw", "status": "success"})
	want := []string{"job:etl_to_dw", "status:success", "step:load"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tags() = %v, want %v", got, want)
	}
	if tags(nil) != nil {
		t.Fatalf("tags(nil) != nil")
	}
}

func TestNewBackendRequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewBackend(Config{}); err == nil {
		t.Fatalf("NewBackend(empty) error = nil, want error")
	}
}

// TestBackendSends uses a UDP address; DogStatsD writes are fire-and-forget,
// so no agent needs to be listening.
func TestBackendSends(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{Addr: "127.0.0.1:8125", Namespace: "smartsales.", Tags: []string{"run_id:test"}})
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b.IncCounter(metrics.RowsTotal, 3, metrics.Labels{"table": "sales"})
	b.ObserveHistogram(metrics.StepDurationSeconds, 0.5, metrics.Labels{"step": "load"})
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}

func TestZeroBackendIsSafe(t *testing.T) {
	t.Parallel()

	var b Backend
	b.IncCounter(metrics.StepTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDurationSeconds, 1, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
}
