package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	srv, err := New(Config{
		ResultsDir:  t.TempDir(),
		ProjectsDir: t.TempDir(),
	})
	require.NoError(t, err)
	return srv.Handler()
}

func TestRootEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "AEOBooster API", body["message"])
}

func TestUnknownPathNotFound(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIRoutesRegistered(t *testing.T) {
	handler := newTestHandler(t)

	for _, path := range []string{"/api/health", "/api/runs", "/api/summary", "/api/projects"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestCORSAppliedWhenConfigured(t *testing.T) {
	srv, err := New(Config{
		ResultsDir:     t.TempDir(),
		AllowedOrigins: []string{"https://dash.example"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://dash.example")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
