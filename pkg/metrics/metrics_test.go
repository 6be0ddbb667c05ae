package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry_InitializesMetrics(t *testing.T) {
	r := NewRegistry()

	if r.TokensProcessed == nil {
		t.Error("TokensProcessed not initialized")
	}
	if r.DeltasForwarded == nil {
		t.Error("DeltasForwarded not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Underlying prometheus registry is nil")
	}
}

func TestRecordDelta(t *testing.T) {
	r := NewRegistry()

	r.RecordDelta(1)
	r.RecordDelta(1)
	r.RecordDelta(-1)
	r.RecordDelta(0) // zero deltas are never forwarded; must not count

	positive := testutil.ToFloat64(r.DeltasForwarded.WithLabelValues("positive"))
	negative := testutil.ToFloat64(r.DeltasForwarded.WithLabelValues("negative"))
	if positive != 2 {
		t.Errorf("Expected 2 positive deltas, got %f", positive)
	}
	if negative != 1 {
		t.Errorf("Expected 1 negative delta, got %f", negative)
	}
}

func TestRecordEstimate(t *testing.T) {
	r := NewRegistry()

	r.RecordEstimate(93492)
	if got := testutil.ToFloat64(r.EstimatesEmitted); got != 1 {
		t.Errorf("Expected 1 emitted estimate, got %f", got)
	}
	if got := testutil.ToFloat64(r.EstimateValue); got != 93492 {
		t.Errorf("Expected estimate gauge 93492, got %f", got)
	}
}

func TestRecordRun(t *testing.T) {
	r := NewRegistry()

	r.RecordRun(250 * time.Millisecond)
	if got := testutil.ToFloat64(r.PipelineRuns); got != 1 {
		t.Errorf("Expected 1 run, got %f", got)
	}
}

func TestDefaultRegistry_Singleton(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry returned different instances")
	}
}
