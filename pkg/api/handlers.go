package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gridsage/cascade/pkg/model"
	"github.com/gridsage/cascade/pkg/validation"
)

// handleInitialize rebuilds the graph from a snapshot.
// POST /initialize
func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var snap model.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body",
			fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := validation.ValidateSnapshot(&snap); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_snapshot", err)
		return
	}

	result := s.predictor.Initialize(&snap)
	s.writeJSON(w, http.StatusOK, result)
}

// handlePredict runs one failure-impact prediction.
// POST /predict
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}

	var req validation.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_body",
			fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := validation.ValidatePredictRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	prediction, err := s.predictor.PredictFailureImpact(req.NodeID, req.FailureType, req.Severity)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, prediction)
}

// handleScenarios returns the static failure scenario catalog.
// GET /scenarios
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"scenarios": s.predictor.FailureScenarios(),
	})
}

// handleHealth reports liveness and graph state.
// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}

	nodes, edges := s.predictor.GraphSize()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"version":     s.version,
		"initialized": s.predictor.Initialized(),
		"nodes":       nodes,
		"edges":       edges,
		"uptime":      time.Since(s.startTime).String(),
	})
}
