package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gridsage/cascade/pkg/logging"
	"github.com/gridsage/cascade/pkg/service"
)

// errorResponse is the JSON error envelope returned on every failure.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response",
			logging.Component("api"),
			logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code string, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// writeServiceError maps the predictor's error taxonomy onto HTTP status
// codes: predict-before-initialize is a conflict, an unknown node is not
// found.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotInitialized):
		s.writeError(w, http.StatusConflict, "not_initialized", err)
	case errors.Is(err, service.ErrUnknownNode):
		s.writeError(w, http.StatusNotFound, "unknown_node", err)
	default:
		s.writeError(w, http.StatusInternalServerError, "internal", err)
	}
}

func (s *Server) requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed",
			errors.New("method not allowed"))
		return false
	}
	return true
}
