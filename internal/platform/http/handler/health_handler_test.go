package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupRouter(checks map[string]Checker) *gin.Engine {
	r := gin.New()
	h := Health(checks)
	r.GET("/healthz", h)
	r.HEAD("/healthz", h)
	r.OPTIONS("/healthz", h)
	return r
}

func healthy(context.Context) error { return nil }

func failing(context.Context) error { return errors.New("connection refused") }

func TestHealth_ResponseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		checks         map[string]Checker
		expectedStatus int
	}{
		{"GET without checks", http.MethodGet, nil, http.StatusOK},
		{"GET healthy", http.MethodGet, map[string]Checker{"database": healthy}, http.StatusOK},
		{"GET degraded", http.MethodGet, map[string]Checker{"database": failing}, http.StatusServiceUnavailable},
		{"HEAD healthy", http.MethodHead, map[string]Checker{"database": healthy}, http.StatusOK},
		{"HEAD degraded", http.MethodHead, map[string]Checker{"database": failing}, http.StatusServiceUnavailable},
		{"OPTIONS skips checks", http.MethodOptions, map[string]Checker{"database": failing}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)

			setupRouter(tt.checks).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.method == http.MethodHead {
				assert.Zero(t, w.Body.Len(), "HEAD has no body")
			}
		})
	}
}

func TestHealth_Body(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	setupRouter(map[string]Checker{"database": healthy, "redis": failing}).ServeHTTP(w, req)

	var body struct {
		Status    string            `json:"status"`
		Timestamp string            `json:"timestamp"`
		Checks    map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.NotEmpty(t, body.Timestamp)
	assert.Equal(t, map[string]string{"database": "ok", "redis": "down"}, body.Checks)
}
