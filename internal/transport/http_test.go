package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/wanderlist/internal/transport"
	"github.com/stretchr/testify/require"
)

func TestRouter_Health(t *testing.T) {
	available := true
	server := httptest.NewServer(transport.NewRouter(http.NotFoundHandler(), func() bool { return available }, nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body transport.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, transport.HealthResponse{Status: "ok", Store: true}, body)

	available = false
	resp2, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)
}

func TestRouter_MountsMCP(t *testing.T) {
	var paths []string
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	})
	server := httptest.NewServer(transport.NewRouter(mcpHandler, nil, nil))
	t.Cleanup(server.Close)

	for _, path := range []string{"/mcp", "/mcp/session"} {
		resp, err := http.Post(server.URL+path, "application/json", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	}
	require.Equal(t, []string{"/mcp", "/mcp/session"}, paths)

	resp, err := http.Get(server.URL + "/trips")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := transport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Mcp-Session-Id", "sess-1")
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/mcp", entry["path"])
	require.EqualValues(t, http.StatusTeapot, entry["status"])
	require.Equal(t, "req-1", entry["request_id"])
	require.Equal(t, "sess-1", entry["mcp_session_id"])
}

func TestRequestLogger_HealthAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := transport.RequestLogger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Empty(t, buf.String())
}
