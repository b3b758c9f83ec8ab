package todos

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router gin.IRouter, store Store) {
	handler := NewHandler(store)

	todos := router.Group(BasePath)
	{
		todos.GET("", handler.List)
		todos.POST("", handler.Create)
		todos.GET("/:id", handler.Get)
		todos.PUT("/:id", handler.Update)
		todos.PATCH("/:id/complete", handler.MarkComplete)
		todos.DELETE("/:id", handler.Delete)
	}
}
