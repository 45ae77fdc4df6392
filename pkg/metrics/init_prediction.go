package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPredictionMetrics() {
	r.PredictionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_predictions_total",
			Help: "Total number of failure-impact predictions by status",
		},
		[]string{"status"},
	)

	r.PredictionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_prediction_duration_seconds",
			Help:    "Failure-impact prediction latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.PredictionAffectedNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_prediction_affected_nodes",
			Help:    "Number of nodes flagged as affected per prediction",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	r.InitializationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_initializations_total",
			Help: "Total number of graph initializations",
		},
	)

	r.InitializationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_initialization_duration_seconds",
			Help:    "Graph build latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
}
