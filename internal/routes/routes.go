package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xyz-asif/kubertodo/docs"
	"github.com/xyz-asif/kubertodo/internal/config"
	"github.com/xyz-asif/kubertodo/internal/features/health"
	"github.com/xyz-asif/kubertodo/internal/features/todos"
	"github.com/xyz-asif/kubertodo/internal/middleware"
	"github.com/xyz-asif/kubertodo/internal/pkg/metrics"
	"github.com/xyz-asif/kubertodo/internal/pkg/ratelimit"
)

const MetricsPath = "/metrics"

// Dependencies are built once at startup and shared by every request.
type Dependencies struct {
	Config   *config.Config
	Store    todos.Store
	Pinger   health.Pinger
	Registry *prometheus.Registry
	// Limiter is only consulted when rate limiting is enabled in Config.
	Limiter *ratelimit.RateLimiter
}

// NewRouter builds the engine with the middleware chain and every route.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigin))
	if cfg.RateLimit.Enabled && deps.Limiter != nil {
		router.Use(ratelimit.Middleware(deps.Limiter, health.Path, MetricsPath))
	}

	health.RegisterRoutes(router, deps.Pinger)

	if deps.Registry != nil {
		router.GET(MetricsPath, gin.WrapH(metrics.Handler(deps.Registry)))
	}

	if !cfg.IsProduction() {
		router.GET(
			"/swagger/*any",
			ginSwagger.WrapHandler(
				swaggerFiles.Handler,
				ginSwagger.URL("/swagger/doc.json"),
				ginSwagger.DeepLinking(true),
				ginSwagger.DefaultModelsExpandDepth(-1),
				ginSwagger.DocExpansion("list"),
			),
		)
	}

	todos.RegisterRoutes(router, todos.Instrument(deps.Store))

	return router
}
