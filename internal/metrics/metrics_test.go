package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type histCall struct {
	name   string
	value  float64
	labels Labels
}

type fakeBackend struct {
	mu       sync.Mutex
	counters []counterCall
	hists    []histCall
	flushes  int
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = append(f.counters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hists = append(f.hists, histCall{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

// install swaps in a fake for the duration of the test. Tests using it must
// not run in parallel.
func install(t *testing.T) *fakeBackend {
	t.Helper()
	orig := current()
	fb := &fakeBackend{}
	SetBackend(fb)
	t.Cleanup(func() { SetBackend(orig) })
	return fb
}

func TestRecordStep(t *testing.T) {
	fb := install(t)

	RecordStep("etl_to_dw", "read_inputs", nil, 2*time.Second)
	RecordStep("etl_to_dw", "replace_all", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.counters) != 2 || len(fb.hists) != 2 {
		t.Fatalf("calls = %d counters, %d histograms; want 2 and 2", len(fb.counters), len(fb.hists))
	}

	tests := []struct {
		i          int
		wantStep   string
		wantStatus string
		wantSecs   float64
	}{
		{i: 0, wantStep: "read_inputs", wantStatus: "success", wantSecs: 2},
		{i: 1, wantStep: "replace_all", wantStatus: "failure", wantSecs: 1.5},
	}
	for _, tt := range tests {
		c := fb.counters[tt.i]
		if c.name != StepTotal || c.delta != 1 {
			t.Fatalf("counter[%d] = %+v, want %s delta 1", tt.i, c, StepTotal)
		}
		if c.labels["job"] != "etl_to_dw" || c.labels["step"] != tt.wantStep || c.labels["status"] != tt.wantStatus {
			t.Fatalf("counter[%d] labels = %v", tt.i, c.labels)
		}
		h := fb.hists[tt.i]
		if h.name != StepDurationSeconds || h.value != tt.wantSecs {
			t.Fatalf("hist[%d] = %+v, want %s %v", tt.i, h, StepDurationSeconds, tt.wantSecs)
		}
	}
}

func TestRecordRows(t *testing.T) {
	fb := install(t)

	RecordRows("etl_to_dw", "sales", 3)
	RecordRows("etl_to_dw", "products", 0)

	if len(fb.counters) != 1 {
		t.Fatalf("counter calls = %d, want 1", len(fb.counters))
	}
	c := fb.counters[0]
	if c.name != RowsTotal || c.delta != 3 || c.labels["table"] != "sales" {
		t.Fatalf("counter = %+v, want %s table=sales delta=3", c, RowsTotal)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	fb := install(t)

	if err := Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if fb.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", fb.flushes)
	}

	SetBackend(nil)
	if current() != Backend(fb) {
		t.Fatal("SetBackend(nil) replaced the backend")
	}
}
