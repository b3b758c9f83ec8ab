package todos

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/kubertodo/internal/pkg/logger"
	"github.com/xyz-asif/kubertodo/internal/pkg/response"
	apperrors "github.com/xyz-asif/kubertodo/pkg/errors"
)

const BasePath = "/api/todo"

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) storeFailed(c *gin.Context, op string, err error) {
	logger.Error("todo store failed", "op", op, "id", c.Param("id"), "err", err)
	response.DatabaseError(c, "Failed to "+op+" todo")
}

// List godoc
// @Summary List todos
// @Description Get every todo, newest first
// @Tags todos
// @Produce json
// @Success 200 {array} Todo
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todo [get]
func (h *Handler) List(c *gin.Context) {
	todos, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storeFailed(c, "list", err)
		return
	}

	response.OK(c, todos)
}

// Get godoc
// @Summary Get a todo by ID
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} Todo
// @Failure 404
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todo/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	todo, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c)
			return
		}
		h.storeFailed(c, "get", err)
		return
	}

	response.OK(c, todo)
}

// Create godoc
// @Summary Create a new todo
// @Description id and createdAt are assigned by the server
// @Tags todos
// @Accept json
// @Produce json
// @Param request body Todo true "Todo to create"
// @Success 201 {object} Todo
// @Header 201 {string} Location "URL of the created todo"
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todo [post]
func (h *Handler) Create(c *gin.Context) {
	var req Todo
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	created, err := h.store.Create(c.Request.Context(), &req)
	if err != nil {
		h.storeFailed(c, "create", err)
		return
	}

	logger.Debug("todo created", "id", created.ID)
	response.Created(c, BasePath+"/"+created.ID, created)
}

// Update godoc
// @Summary Replace a todo
// @Description The path id wins over any id in the body
// @Tags todos
// @Accept json
// @Param id path string true "Todo ID"
// @Param request body Todo true "Replacement todo"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todo/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	var req Todo
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	req.ID = id

	ok, err := h.store.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.storeFailed(c, "update", err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}

	response.NoContent(c)
}

// MarkComplete godoc
// @Summary Set the completion flag of a todo
// @Tags todos
// @Accept json
// @Param id path string true "Todo ID"
// @Param request body CompleteRequest true "Completion flag"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todo/{id}/complete [patch]
func (h *Handler) MarkComplete(c *gin.Context) {
	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	ok, err := h.store.MarkComplete(c.Request.Context(), c.Param("id"), req.IsCompleted)
	if err != nil {
		h.storeFailed(c, "complete", err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a todo
// @Tags todos
// @Param id path string true "Todo ID"
// @Success 204
// @Failure 404
// @Failure 500 {object} response.ErrorResponse
// @Router /api/todo/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	ok, err := h.store.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeFailed(c, "delete", err)
		return
	}
	if !ok {
		response.NotFound(c)
		return
	}

	response.NoContent(c)
}
