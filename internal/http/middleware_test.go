package httpx

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserDetection(t *testing.T) {
	t.Parallel()
	var got bool
	handler := BrowserDetection()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = IsBrowserRequest(r)
	}))

	tests := []struct {
		name   string
		path   string
		accept string
		htmx   bool
		want   bool
	}{
		{name: "json client", path: "/users-list", accept: "application/json"},
		{name: "static file", path: "/static/js/app.js", accept: "text/html"},
		{name: "health check", path: "/healthz", accept: "text/html"},
		{name: "metrics scrape", path: "/metrics", accept: "text/plain"},
		{name: "navigation", path: "/categories-list", accept: "text/html,application/xhtml+xml;q=0.9", want: true},
		{name: "htmx swap", path: "/users-list", accept: "*/*", htmx: true, want: true},
		{name: "no accept", path: "/dashboard", want: true},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.accept != "" {
			req.Header.Set("Accept", tt.accept)
		}
		if tt.htmx {
			req.Header.Set("Hx-Request", "true")
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestIsBrowserRequest_FallsBackWithoutMiddleware(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	assert.False(t, IsBrowserRequest(req))

	req.Header.Set("Accept", "text/html")
	assert.True(t, IsBrowserRequest(req))
}

func TestLogging_RecordsStatus(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := Logging(logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users-list", nil))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"status":502`)
	assert.Contains(t, buf.String(), `"path":"/users-list"`)
}

func TestRecover(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "handler panic")
}
