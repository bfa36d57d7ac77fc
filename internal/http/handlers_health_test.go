package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		method   string
		checks   map[string]HealthChecker
		wantCode int
		wantBody string
	}{
		{name: "no checks", method: http.MethodGet, wantCode: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "passing check", method: http.MethodGet, checks: map[string]HealthChecker{"redis": ok}, wantCode: http.StatusOK, wantBody: `{"status":"ok"}`},
		{
			name:     "failing check",
			method:   http.MethodGet,
			checks:   map[string]HealthChecker{"redis": down, "other": ok},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"failed":{"redis":"connection refused"},"status":"unavailable"}`,
		},
		{name: "head passing", method: http.MethodHead, checks: map[string]HealthChecker{"redis": ok}, wantCode: http.StatusOK},
		{name: "head failing", method: http.MethodHead, checks: map[string]HealthChecker{"redis": down}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			healthHandler(tt.checks)(rec, httptest.NewRequest(tt.method, "/healthz", nil))

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.method == http.MethodHead {
				assert.Empty(t, rec.Body.String())
				return
			}
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
