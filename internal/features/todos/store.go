package todos

import (
	"context"
	"errors"

	"github.com/xyz-asif/kubertodo/internal/pkg/metrics"
	apperrors "github.com/xyz-asif/kubertodo/pkg/errors"
)

// Store owns access to the todo collection. Each call is one round trip.
//
// Update and MarkComplete report false only when no item has the id; a write
// that leaves the item unchanged still succeeds.
type Store interface {
	List(ctx context.Context) ([]Todo, error)
	GetByID(ctx context.Context, id string) (*Todo, error)
	Create(ctx context.Context, todo *Todo) (*Todo, error)
	Update(ctx context.Context, id string, todo *Todo) (bool, error)
	MarkComplete(ctx context.Context, id string, isCompleted bool) (bool, error)
	Remove(ctx context.Context, id string) (bool, error)
}

// Instrument wraps a store so every call is counted in
// kubertodo_store_operations_total.
func Instrument(store Store) Store {
	return &instrumentedStore{next: store}
}

type instrumentedStore struct {
	next Store
}

func observe(op string, found bool, err error) {
	result := "ok"
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	case !found:
		result = "not_found"
	}
	metrics.StoreOperations.WithLabelValues(op, result).Inc()
}

func (s *instrumentedStore) List(ctx context.Context) ([]Todo, error) {
	todos, err := s.next.List(ctx)
	observe("list", true, err)
	return todos, err
}

func (s *instrumentedStore) GetByID(ctx context.Context, id string) (*Todo, error) {
	todo, err := s.next.GetByID(ctx, id)
	observe("get", true, err)
	return todo, err
}

func (s *instrumentedStore) Create(ctx context.Context, todo *Todo) (*Todo, error) {
	created, err := s.next.Create(ctx, todo)
	observe("create", true, err)
	return created, err
}

func (s *instrumentedStore) Update(ctx context.Context, id string, todo *Todo) (bool, error) {
	ok, err := s.next.Update(ctx, id, todo)
	observe("update", ok, err)
	return ok, err
}

func (s *instrumentedStore) MarkComplete(ctx context.Context, id string, isCompleted bool) (bool, error) {
	ok, err := s.next.MarkComplete(ctx, id, isCompleted)
	observe("mark_complete", ok, err)
	return ok, err
}

func (s *instrumentedStore) Remove(ctx context.Context, id string) (bool, error) {
	ok, err := s.next.Remove(ctx, id)
	observe("remove", ok, err)
	return ok, err
}
