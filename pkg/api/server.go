package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gridsage/cascade/pkg/logging"
	"github.com/gridsage/cascade/pkg/metrics"
	"github.com/gridsage/cascade/pkg/service"
)

// Server exposes the predictor over HTTP.
type Server struct {
	predictor       *service.Predictor
	logger          logging.Logger
	metricsRegistry *metrics.Registry
	startTime       time.Time
	version         string
	port            int
	metricsOnce     sync.Once
}

// NewServer creates a new API server around a predictor.
func NewServer(predictor *service.Predictor, registry *metrics.Registry, logger logging.Logger, port int) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.DefaultRegistry()
	}
	return &Server{
		predictor:       predictor,
		logger:          logger,
		metricsRegistry: registry,
		startTime:       time.Now(),
		version:         "1.0.0",
		port:            port,
	}
}

// Handler builds the full route table with middleware applied. Split out
// from Start so tests can drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(
		s.metricsRegistry.GetPrometheusRegistry(),
		promhttp.HandlerOpts{},
	))

	mux.HandleFunc("/initialize", s.handleInitialize)
	mux.HandleFunc("/predict", s.handlePredict)
	mux.HandleFunc("/scenarios", s.handleScenarios)

	s.metricsOnce.Do(func() {
		go s.updateMetricsPeriodically()
	})

	return s.requestIDMiddleware(s.metricsMiddleware(mux))
}

// Start starts the HTTP server and blocks until it exits.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("cascade API server starting",
		logging.Component("api"),
		logging.String("addr", addr))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return httpServer.ListenAndServe()
}
