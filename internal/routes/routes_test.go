package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/kubertodo/internal/config"
	"github.com/xyz-asif/kubertodo/internal/features/health"
	"github.com/xyz-asif/kubertodo/internal/features/todos"
	"github.com/xyz-asif/kubertodo/internal/middleware"
	"github.com/xyz-asif/kubertodo/internal/pkg/metrics"
	"github.com/xyz-asif/kubertodo/internal/pkg/ratelimit"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "8080", Environment: "test"},
		CORS:      config.CORSConfig{AllowedOrigin: "*"},
		RateLimit: config.RateLimitConfig{Enabled: false, RPS: 20, Burst: 40},
		Store:     config.StoreConfig{Driver: config.DriverMemory},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config, limiter *ratelimit.RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := todos.NewMemoryStore()
	return NewRouter(Dependencies{
		Config:   cfg,
		Store:    store,
		Pinger:   store,
		Registry: metrics.NewRegistry(),
		Limiter:  limiter,
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_TodoFlow(t *testing.T) {
	r := newTestRouter(t, testConfig(), nil)

	w := do(r, http.MethodPost, "/api/todo", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var created todos.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "/api/todo/"+created.ID, w.Header().Get("Location"))

	w = do(r, http.MethodPatch, "/api/todo/"+created.ID+"/complete", `{"isCompleted":true}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/todo", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []todos.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.True(t, list[0].IsCompleted)

	w = do(r, http.MethodDelete, "/api/todo/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/todo/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, testConfig(), nil)

	w := do(r, http.MethodGet, health.Path, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"OK"}`, w.Body.String())

	gin.SetMode(gin.TestMode)
	down := NewRouter(Dependencies{
		Config: testConfig(),
		Store:  todos.NewMemoryStore(),
		Pinger: health.PingerFunc(func(context.Context) error { return errors.New("connection refused") }),
	})
	w = do(down, http.MethodGet, health.Path, "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"status":"Unhealthy"}`, w.Body.String())
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r := newTestRouter(t, testConfig(), nil)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/todo", "").Code)

	w := do(r, http.MethodGet, MetricsPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "kubertodo_http_requests_total")
	require.Contains(t, w.Body.String(), "kubertodo_store_operations_total")
	require.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_Swagger(t *testing.T) {
	r := newTestRouter(t, testConfig(), nil)

	w := do(r, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "/api/todo/{id}/complete")

	cfg := testConfig()
	cfg.Server.Environment = "production"
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })
	prod := newTestRouter(t, cfg, nil)

	w = do(prod, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	r := newTestRouter(t, cfg, ratelimit.New(1, 2))

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/todo", "").Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/todo", "").Code)

	w := do(r, http.MethodGet, "/api/todo", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))

	// probes are never throttled
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, health.Path, "").Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, MetricsPath, "").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/todo/abc/complete", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
