package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/kubertodo/internal/pkg/logger"
)

const Path = "/health"

// Pinger runs the store's liveness command.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// Status is the body of /health.
type Status struct {
	Status string `json:"status" example:"OK"`
}

type Handler struct {
	pinger Pinger
}

func NewHandler(pinger Pinger) *Handler {
	return &Handler{pinger: pinger}
}

// Check godoc
// @Summary Liveness and readiness probe
// @Description Pings the database; 200 only when it answers ok >= 1
// @Tags health
// @Produce json
// @Success 200 {object} Status
// @Failure 500 {object} Status
// @Router /health [get]
func (h *Handler) Check(c *gin.Context) {
	if err := h.pinger.Ping(c.Request.Context()); err != nil {
		logger.Warn("health check failed", "err", err)
		c.JSON(http.StatusInternalServerError, Status{Status: "Unhealthy"})
		return
	}

	c.JSON(http.StatusOK, Status{Status: "OK"})
}

func RegisterRoutes(router gin.IRoutes, pinger Pinger) {
	router.GET(Path, NewHandler(pinger).Check)
}
