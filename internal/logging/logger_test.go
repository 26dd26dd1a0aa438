package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogrusLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLogrusLevel(tt.input))
		})
	}
}

func TestNewLogger_Formatter(t *testing.T) {
	dev := NewLogger("debug", "development")
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())

	prod := NewLogger("warn", "production")
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)
	assert.Equal(t, logrus.WarnLevel, prod.GetLevel())
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestStandardLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(newLogger(&buf, "debug", "production"))

	logger.WithSymbol("TCS.NS").Info("computed")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "TCS.NS", entry["symbol"])
	assert.Equal(t, "computed", entry["msg"])

	buf.Reset()
	logger.WithError(errors.New("boom")).Error("failed")
	entry = decodeLine(t, &buf)
	assert.Equal(t, "boom", entry["error"])

	buf.Reset()
	logger.LogDatasetLoad("csv", 120, 3, 15)
	entry = decodeLine(t, &buf)
	assert.Equal(t, "dataset", entry["event"])
	assert.Equal(t, float64(120), entry["rows"])
}

func TestLogAPIRequest_LevelByStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(newLogger(&buf, "info", "production"))

	logger.LogAPIRequest("GET", "/api/simulate", 404, 3, "req-1")
	entry := decodeLine(t, &buf)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])

	buf.Reset()
	logger.LogAPIRequest("GET", "/api/macd-heatmap", 500, 3, "req-2")
	entry = decodeLine(t, &buf)
	assert.Equal(t, "error", entry["level"])
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := Wrap(newLogger(&buf, "info", "production"))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(RequestIDKey, "abc")
		c.Next()
	})
	router.Use(RequestLogger(logger))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "/ping", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "abc", entry["request_id"])
}
