package metrics

import (
	"runtime"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordPrediction records one failure-impact prediction
func (r *Registry) RecordPrediction(status string, duration time.Duration, affectedNodes int) {
	r.PredictionsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		r.PredictionDuration.Observe(duration.Seconds())
		r.PredictionAffectedNodes.Observe(float64(affectedNodes))
	}
}

// RecordInitialization records a graph rebuild and the resulting graph size
func (r *Registry) RecordInitialization(duration time.Duration, nodes, edges int) {
	r.InitializationsTotal.Inc()
	r.InitializationDuration.Observe(duration.Seconds())
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// UpdateSystemMetrics refreshes uptime and runtime gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
}
