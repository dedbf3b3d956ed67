package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parley-ai/parley/pkg/core"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(&ServerConfig{
		Host:     "127.0.0.1",
		Port:     0,
		LogLevel: "error",
	})
	require.NoError(t, err)
	return server
}

func doRequest(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func createDebate(t *testing.T, s *Server) *core.Debate {
	t.Helper()
	w := doRequest(s, http.MethodPost, "/debate/create", CreateDebateRequest{
		Proposition:  "testing is worthwhile",
		ForModel:     "claude-sonnet-4-5-20250929",
		AgainstModel: "gpt-4o",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var debate core.Debate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debate))
	return &debate
}

func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Kind
}

func TestRootEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/debate")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestCreateDebate(t *testing.T) {
	s := newTestServer(t)
	debate := createDebate(t, s)

	assert.NotEmpty(t, debate.ID)
	assert.Equal(t, core.StatusCreated, debate.Status)
	assert.Equal(t, "testing is worthwhile", debate.Proposition)
}

func TestCreateDebateMissingFields(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/debate/create", map[string]string{
		"proposition": "incomplete",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorKind(t, w))
}

func TestGetDebate(t *testing.T) {
	s := newTestServer(t)
	debate := createDebate(t, s)

	w := doRequest(s, http.MethodGet, "/debate/"+debate.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got core.Debate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, debate.ID, got.ID)
}

func TestGetDebateNotFound(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/debate/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errorKind(t, w))
}

func TestListDebates(t *testing.T) {
	s := newTestServer(t)
	first := createDebate(t, s)
	second := createDebate(t, s)

	w := doRequest(s, http.MethodGet, "/debate/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var debates []core.Debate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &debates))
	require.Len(t, debates, 2)
	assert.Equal(t, first.ID, debates[0].ID)
	assert.Equal(t, second.ID, debates[1].ID)
}

func TestStartDebateMissingCredentials(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	s := newTestServer(t)
	debate := createDebate(t, s)

	w := doRequest(s, http.MethodPost, fmt.Sprintf("/debate/%s/start", debate.ID), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "configuration_error", errorKind(t, w))

	// No turns were generated.
	w = doRequest(s, http.MethodGet, "/debate/"+debate.ID, nil)
	var got core.Debate
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Empty(t, got.Turns)
}

func TestStartDebateNotFound(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/debate/no-such-id/start", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdjudicateBeforeCompletion(t *testing.T) {
	s := newTestServer(t)
	debate := createDebate(t, s)

	w := doRequest(s, http.MethodPost, fmt.Sprintf("/debate/%s/adjudicate", debate.ID), AdjudicateRequest{
		JudgeModel: "gemini-2.0-flash-lite",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "state_error", errorKind(t, w))
}

func TestAdjudicateMissingJudgeModel(t *testing.T) {
	s := newTestServer(t)
	debate := createDebate(t, s)

	w := doRequest(s, http.MethodPost, fmt.Sprintf("/debate/%s/adjudicate", debate.ID), map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorKind(t, w))
}

func TestDeleteDebate(t *testing.T) {
	s := newTestServer(t)
	debate := createDebate(t, s)

	w := doRequest(s, http.MethodDelete, "/debate/"+debate.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(s, http.MethodDelete, "/debate/"+debate.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailableModels(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/debate/models/available", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var models map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &models))
	assert.Contains(t, models["anthropic"], "claude-sonnet-4-5-20250929")
	assert.Contains(t, models["openai"], "gpt-4o")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	createDebate(t, s)

	w := doRequest(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "parley_debates_created_total 1")
}

func TestMetricsCountFailedRuns(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	s := newTestServer(t)
	debate := createDebate(t, s)

	w := doRequest(s, http.MethodPost, fmt.Sprintf("/debate/%s/start", debate.ID), nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `parley_debate_runs_total{outcome="failed"} 1`)
}

func TestScaffoldEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/rag/", "/mcp/"} {
		w := doRequest(s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "not_implemented")
	}
	for _, path := range []string{"/rag/health", "/mcp/health"} {
		w := doRequest(s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestWatchUnknownDebate(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/debate/no-such-id/watch", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/debate/create", strings.NewReader(""))
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewServerRejectsBadStoreURI(t *testing.T) {
	_, err := NewServer(&ServerConfig{StoreURI: "postgres://localhost/parley"})
	assert.Error(t, err)
}
