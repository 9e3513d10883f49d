package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRequest_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := newLoggerTo(&buf, "production")

		logger.LogRequest("GET", "/api/v1/achievements/leaderboard", tt.status, "1ms")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, tt.level, entry["level"])
		assert.Equal(t, float64(tt.status), entry["status_code"])
	}
}

func TestLogError_IncludesError(t *testing.T) {
	var buf bytes.Buffer
	logger := newLoggerTo(&buf, "development").With("component", "test")

	logger.LogError(errors.New("boom"), "request failed")

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "component=test")
}

func TestLoggerMiddleware_SkipsHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := newLoggerTo(&buf, "production")

	router := gin.New()
	router.Use(LoggerMiddleware(logger))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buf.String())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.True(t, strings.Contains(buf.String(), `"path":"/api"`))
}
