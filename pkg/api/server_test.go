package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gridsage/cascade/pkg/metrics"
	"github.com/gridsage/cascade/pkg/service"
)

func newTestServer() *Server {
	predictor := service.NewPredictor(service.Options{})
	return NewServer(predictor, metrics.NewRegistry(), nil, 0)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func getPath(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const initializeBody = `{
	"powerNodes": [
		{"id": "power-1", "name": "Main Generator", "position": {"x": 0, "y": 0}}
	],
	"waterPumps": [
		{"id": "pump-1", "name": "North Pump", "position": {"x": 30, "y": 0}},
		{"id": "pump-2", "name": "South Pump", "position": {"x": 0, "y": 40}}
	]
}`

// TestHandleInitialize tests a successful graph rebuild
func TestHandleInitialize(t *testing.T) {
	handler := newTestServer().Handler()

	rec := postJSON(t, handler, "/initialize", initializeBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result.Nodes) != 3 {
		t.Errorf("Expected 3 nodes, got %d", len(result.Nodes))
	}
	if len(result.Edges) == 0 {
		t.Error("Expected edges in the view")
	}
}

// TestHandleInitialize_InvalidBody tests malformed JSON rejection
func TestHandleInitialize_InvalidBody(t *testing.T) {
	handler := newTestServer().Handler()

	rec := postJSON(t, handler, "/initialize", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

// TestHandleInitialize_InvalidSnapshot tests snapshot validation rejection
func TestHandleInitialize_InvalidSnapshot(t *testing.T) {
	handler := newTestServer().Handler()

	rec := postJSON(t, handler, "/initialize",
		`{"roads": [{"id": "road-1"}, {"id": "road-1"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for duplicate ids, got %d", rec.Code)
	}

	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if errResp.Code != "invalid_snapshot" {
		t.Errorf("Expected invalid_snapshot code, got %s", errResp.Code)
	}
}

// TestHandleInitialize_WrongMethod tests method enforcement
func TestHandleInitialize_WrongMethod(t *testing.T) {
	handler := newTestServer().Handler()

	rec := getPath(t, handler, "/initialize")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Expected Allow: POST, got %q", allow)
	}
}

// TestHandlePredict tests the full initialize-then-predict flow
func TestHandlePredict(t *testing.T) {
	handler := newTestServer().Handler()

	if rec := postJSON(t, handler, "/initialize", initializeBody); rec.Code != http.StatusOK {
		t.Fatalf("Initialize failed: %d", rec.Code)
	}

	rec := postJSON(t, handler, "/predict",
		`{"nodeId": "power-1", "failureType": "outage", "severity": "high"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var prediction service.Prediction
	if err := json.Unmarshal(rec.Body.Bytes(), &prediction); err != nil {
		t.Fatalf("Failed to decode prediction: %v", err)
	}
	if prediction.SourceFailure.NodeID != "power-1" {
		t.Errorf("Unexpected source: %+v", prediction.SourceFailure)
	}
	if prediction.TotalAffected == 0 {
		t.Error("Expected the outage to affect the pumps")
	}
}

// TestHandlePredict_NotInitialized tests the 409 mapping
func TestHandlePredict_NotInitialized(t *testing.T) {
	handler := newTestServer().Handler()

	rec := postJSON(t, handler, "/predict", `{"nodeId": "power-1"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", rec.Code)
	}

	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if errResp.Code != "not_initialized" {
		t.Errorf("Expected not_initialized code, got %s", errResp.Code)
	}
}

// TestHandlePredict_UnknownNode tests the 404 mapping and the id sample
func TestHandlePredict_UnknownNode(t *testing.T) {
	handler := newTestServer().Handler()
	postJSON(t, handler, "/initialize", initializeBody)

	rec := postJSON(t, handler, "/predict", `{"nodeId": "does-not-exist"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	var errResp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Failed to decode error: %v", err)
	}
	if errResp.Code != "unknown_node" {
		t.Errorf("Expected unknown_node code, got %s", errResp.Code)
	}
	if !strings.Contains(errResp.Error, "power-1") {
		t.Errorf("Error should list sample ids: %q", errResp.Error)
	}
}

// TestHandlePredict_InvalidRequest tests request validation rejection
func TestHandlePredict_InvalidRequest(t *testing.T) {
	handler := newTestServer().Handler()
	postJSON(t, handler, "/initialize", initializeBody)

	rec := postJSON(t, handler, "/predict", `{"nodeId": "power-1", "severity": "apocalyptic"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

// TestHandleScenarios tests the catalog endpoint
func TestHandleScenarios(t *testing.T) {
	handler := newTestServer().Handler()

	rec := getPath(t, handler, "/scenarios")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var result struct {
		Scenarios []struct {
			ID           string   `json:"id"`
			ApplicableTo []string `json:"applicableTo"`
		} `json:"scenarios"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode scenarios: %v", err)
	}
	if len(result.Scenarios) == 0 {
		t.Fatal("Expected scenarios in catalog")
	}
	for _, s := range result.Scenarios {
		if len(s.ApplicableTo) == 0 {
			t.Errorf("Scenario %q applies to no types", s.ID)
		}
	}
}

// TestHandleHealth tests liveness reporting before and after initialize
func TestHandleHealth(t *testing.T) {
	handler := newTestServer().Handler()

	rec := getPath(t, handler, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var health struct {
		Status      string `json:"status"`
		Initialized bool   `json:"initialized"`
		Nodes       int    `json:"nodes"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health: %v", err)
	}
	if health.Status != "ok" || health.Initialized {
		t.Errorf("Unexpected health before initialize: %+v", health)
	}

	postJSON(t, handler, "/initialize", initializeBody)
	rec = getPath(t, handler, "/health")
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health: %v", err)
	}
	if !health.Initialized || health.Nodes != 3 {
		t.Errorf("Unexpected health after initialize: %+v", health)
	}
}

// TestRequestIDMiddleware tests id generation and passthrough
func TestRequestIDMiddleware(t *testing.T) {
	handler := newTestServer().Handler()

	rec := getPath(t, handler, "/health")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "upstream-id-7")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id-7" {
		t.Errorf("Expected upstream id honored, got %q", got)
	}
}

// TestMetricsEndpoint tests that the Prometheus endpoint serves
func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer().Handler()

	// generate at least one labelled observation first
	getPath(t, handler, "/health")

	rec := getPath(t, handler, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cascade_http_requests_total") {
		t.Error("Expected cascade metrics in exposition output")
	}
}
