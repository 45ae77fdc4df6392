package metrics

import (
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.HTTPRequestDuration == nil {
		t.Error("HTTPRequestDuration not initialized")
	}
	if r.PredictionsTotal == nil {
		t.Error("PredictionsTotal not initialized")
	}
	if r.PredictionDuration == nil {
		t.Error("PredictionDuration not initialized")
	}
	if r.PredictionAffectedNodes == nil {
		t.Error("PredictionAffectedNodes not initialized")
	}
	if r.InitializationsTotal == nil {
		t.Error("InitializationsTotal not initialized")
	}
	if r.GraphNodesTotal == nil {
		t.Error("GraphNodesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/predict", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("POST", "/predict", "200", 50*time.Millisecond)
	r.RecordHTTPRequest("POST", "/predict", "404", 10*time.Millisecond)

	counter, err := r.HTTPRequestsTotal.GetMetricWithLabelValues("POST", "/predict", "200")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}

	if metric.Counter.GetValue() != 2 {
		t.Errorf("Counter value = %v, want 2", metric.Counter.GetValue())
	}
}

func TestRecordPrediction(t *testing.T) {
	r := NewRegistry()

	r.RecordPrediction("success", 20*time.Millisecond, 5)
	r.RecordPrediction("success", 30*time.Millisecond, 2)
	r.RecordPrediction("unknown_node", 0, 0)

	successCounter, err := r.PredictionsTotal.GetMetricWithLabelValues("success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := successCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.PredictionsTotal.GetMetricWithLabelValues("unknown_node")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}

	// Duration histogram only observes successful predictions
	var histMetric dto.Metric
	if err := r.PredictionDuration.Write(&histMetric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if histMetric.Histogram.GetSampleCount() != 2 {
		t.Errorf("Duration samples = %v, want 2", histMetric.Histogram.GetSampleCount())
	}
}

func TestRecordInitialization(t *testing.T) {
	r := NewRegistry()

	r.RecordInitialization(50*time.Millisecond, 120, 340)

	var metric dto.Metric
	if err := r.InitializationsTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Initializations = %v, want 1", metric.Counter.GetValue())
	}

	if err := r.GraphNodesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 120 {
		t.Errorf("Graph nodes gauge = %v, want 120", metric.Gauge.GetValue())
	}

	if err := r.GraphEdgesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 340 {
		t.Errorf("Graph edges gauge = %v, want 340", metric.Gauge.GetValue())
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateSystemMetrics(time.Now().Add(-10 * time.Second))

	var metric dto.Metric
	if err := r.UptimeSeconds.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 9 {
		t.Errorf("Uptime = %v, want >= 9", metric.Gauge.GetValue())
	}

	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("Goroutines = %v, want >= 1", metric.Gauge.GetValue())
	}
}

func TestMetricNamesHavePrefix(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("Expected gathered metric families")
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "cascade_") {
			t.Errorf("Metric %s lacks the cascade_ prefix", mf.GetName())
		}
	}
}
