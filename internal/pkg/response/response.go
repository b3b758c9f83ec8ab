package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error string `json:"error" example:"Failed to get todos"`
	Code  string `json:"code,omitempty" example:"DATABASE_ERROR"`
}

// OK sends a 200 OK response with the payload as the body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response with a Location header
func Created(c *gin.Context, location string, data interface{}) {
	c.Header("Location", location)
	c.JSON(http.StatusCreated, data)
}

// NoContent sends a 204 with an empty body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// NotFound sends a bare 404
func NotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	code := ""
	if len(errorCode) > 0 {
		code = errorCode[0]
	}

	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// TooManyRequests sends a 429 error
func TooManyRequests(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusTooManyRequests, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, "Invalid request format", "INVALID_JSON")
}

// DatabaseError handles database operation errors
func DatabaseError(c *gin.Context, message string) {
	InternalServerError(c, message, "DATABASE_ERROR")
}
