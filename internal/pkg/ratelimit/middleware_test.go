package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/kubertodo/internal/pkg/metrics"
)

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, 0) // empty bucket that never refills
	r := gin.New()
	r.Use(Middleware(lim))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	rejected := testutil.ToFloat64(metrics.RateLimitRejected.WithLabelValues("memory"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "Rate limit exceeded. Try again later.", body["error"])
	require.Equal(t, "RATE_LIMITED", body["code"])
	require.Equal(t, rejected+1, testutil.ToFloat64(metrics.RateLimitRejected.WithLabelValues("memory")))
}

func TestMiddleware_BurstThenReject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0.001, 2)
	r := gin.New()
	r.Use(Middleware(lim))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		codes = append(codes, w.Code)
	}
	require.Equal(t, []int{200, 200, 429}, codes)
}

func TestMiddleware_SkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, 0)
	r := gin.New()
	r.Use(Middleware(lim, "/health"))
	r.GET("/health", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, 200, w.Code)
	require.Equal(t, 0, lim.Len())
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	lim := New(10, 10)
	require.True(t, lim.Allow("a"))
	require.Equal(t, 1, lim.Len())

	lim.Cleanup(time.Hour)
	require.Equal(t, 1, lim.Len())

	lim.Cleanup(-time.Second)
	require.Equal(t, 0, lim.Len())
}
