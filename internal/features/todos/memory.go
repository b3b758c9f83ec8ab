package todos

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/xyz-asif/kubertodo/pkg/errors"
)

// MemoryStore is an in-process Store used by tests and by STORE_DRIVER=memory.
// Ids are ObjectID hex strings so both stores hand out the same id format.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Todo
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]Todo),
		now:   creationTime,
	}
}

// Ping always succeeds; it lets the memory store back the health check.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) List(ctx context.Context) ([]Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Todo, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	// newest first; ties fall back to id, which grows with insertion order
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*Todo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (m *MemoryStore) Create(ctx context.Context, todo *Todo) (*Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := Todo{
		ID:          primitive.NewObjectID().Hex(),
		Title:       todo.Title,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   m.now(),
	}
	m.items[created.ID] = created
	return &created, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, todo *Todo) (bool, error) {
	todo.ID = id

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.items[id]
	if !ok {
		return false, nil
	}
	existing.Title = todo.Title
	existing.IsCompleted = todo.IsCompleted
	m.items[id] = existing
	return true, nil
}

func (m *MemoryStore) MarkComplete(ctx context.Context, id string, isCompleted bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.items[id]
	if !ok {
		return false, nil
	}
	existing.IsCompleted = isCompleted
	m.items[id] = existing
	return true, nil
}

func (m *MemoryStore) Remove(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}
