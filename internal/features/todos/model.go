package todos

import (
	"time"
)

// Todo represents a todo item
// @Description Todo item with all its properties
type Todo struct {
	ID          string    `json:"id" example:"507f1f77bcf86cd799439011"`
	Title       string    `json:"title" example:"Buy milk"`
	IsCompleted bool      `json:"isCompleted" example:"false"`
	CreatedAt   time.Time `json:"createdAt" example:"2023-01-01T00:00:00Z"`
}

// CompleteRequest carries the completion flag for PATCH /{id}/complete
// @Description Completion flag to set on a todo
type CompleteRequest struct {
	IsCompleted bool `json:"isCompleted" example:"true"`
}

// creationTime is the current UTC instant at the precision a BSON datetime
// keeps, so a stored item reads back equal to what Create returned.
func creationTime() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
