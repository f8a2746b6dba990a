package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/evanschultz/widgets/internal/app"
	"github.com/evanschultz/widgets/internal/domain"
)

// Repository keeps tasks in a slice in insertion order.
type Repository struct {
	mu    sync.Mutex
	tasks []domain.Task
}

// New constructs an empty repository.
func New() *Repository {
	return &Repository{}
}

// AppendTask appends t, rejecting an ID that is already stored.
func (r *Repository) AppendTask(_ context.Context, t domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexLocked(t.ID) >= 0 {
		return app.ErrDuplicateID
	}
	r.tasks = append(r.tasks, t)
	return nil
}

// UpdateTask replaces the stored task with the same ID in place.
func (r *Repository) UpdateTask(_ context.Context, t domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(t.ID)
	if idx < 0 {
		return app.ErrNotFound
	}
	r.tasks[idx] = t
	return nil
}

// GetTask returns the task with id.
func (r *Repository) GetTask(_ context.Context, id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, app.ErrNotFound
	}
	return r.tasks[idx], nil
}

// ListTasks returns a copy of all tasks.
func (r *Repository) ListTasks(context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

// DeleteTask removes the task with id, keeping the order of the rest.
func (r *Repository) DeleteTask(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexLocked(id)
	if idx < 0 {
		return app.ErrNotFound
	}
	r.tasks = slices.Delete(r.tasks, idx, idx+1)
	return nil
}

func (r *Repository) indexLocked(id string) int {
	return slices.IndexFunc(r.tasks, func(t domain.Task) bool {
		return t.ID == id
	})
}
