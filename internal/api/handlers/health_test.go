package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", h.HealthCheck)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	t.Run("optional dependencies not configured", func(t *testing.T) {
		code, body := serveHealth(t, NewHealthHandler(&staticSource{}, nil, nil))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "not configured", body.Services["database"])
		assert.Equal(t, "not configured", body.Services["redis"])
		assert.Equal(t, "not loaded", body.Services["dataset"])
		assert.NotEmpty(t, body.Uptime)
	})

	t.Run("all healthy with loaded dataset", func(t *testing.T) {
		code, body := serveHealth(t, NewHealthHandler(&staticSource{ds: testDataset()}, stubChecker{}, stubChecker{}))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", body.Services["database"])
		assert.Equal(t, "loaded from static", body.Services["dataset"])
		assert.Equal(t, 120, body.Dataset["rows"])
		assert.Equal(t, 2, body.Dataset["symbols"])
	})

	t.Run("redis down", func(t *testing.T) {
		code, body := serveHealth(t, NewHealthHandler(&staticSource{}, nil, stubChecker{err: errors.New("connection refused")}))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, "unhealthy: connection refused", body.Services["redis"])
	})
}
