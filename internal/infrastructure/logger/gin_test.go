package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("request_id", "req-7") })
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/api/v1/contracts", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})

	w := performRequest(router, http.MethodGet, "/api/v1/contracts?page=2")
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, 1, recorded.Len())
	entry := recorded.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/contracts", fields["path"])
	assert.Equal(t, "req-7", fields["request_id"])
	assert.Equal(t, "page=2", fields["query"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestGinMiddlewareLogLevelTracksStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusNotFound, zapcore.WarnLevel},
		{"server error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)
			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/x", func(c *gin.Context) { c.Status(tt.status) })

			performRequest(router, http.MethodGet, "/x")

			require.Equal(t, 1, recorded.Len())
			assert.Equal(t, tt.level, recorded.All()[0].Level)
		})
	}
}

func TestGinMiddlewarePropagatesRequestContext(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("request_id", "req-9") })
	router.Use(GinMiddleware(zap.NewNop()))

	var seenID string
	router.GET("/x", func(c *gin.Context) {
		seenID = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	performRequest(router, http.MethodGet, "/x")
	assert.Equal(t, "req-9", seenID)
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("resolver blew up")
	})

	w := performRequest(router, http.MethodGet, "/boom")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, recorded.Len())
	entry := recorded.All()[0]
	assert.Equal(t, "Panic recovered", entry.Message)
	assert.Equal(t, "resolver blew up", entry.ContextMap()["error"])
}

func TestGetGinLogger(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/x", func(c *gin.Context) {
		GetGinLogger(c).Info("from handler")
		c.Status(http.StatusOK)
	})

	performRequest(router, http.MethodGet, "/x")

	messages := make([]string, 0, recorded.Len())
	for _, e := range recorded.All() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "from handler")
}

func TestGetGinLoggerWithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotPanics(t, func() { GetGinLogger(c).Info("orphan") })
}
