package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evanschultz/widgets/internal/domain"
)

// maxIDAttempts bounds how often Add retries after an ID collision.
const maxIDAttempts = 3

// IDGenerator returns unique identifiers for new tasks.
type IDGenerator func() string

// SeedTask describes one task loaded into a fresh store.
type SeedTask struct {
	Title     string
	Completed bool
}

// TaskStore owns the ordered to-do collection. Blank titles and unknown IDs
// are silent no-ops; only repository failures surface as errors.
type TaskStore struct {
	repo  TaskRepository
	idGen IDGenerator
}

// NewTaskStore constructs a task store over repo.
func NewTaskStore(repo TaskRepository, idGen IDGenerator) *TaskStore {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	return &TaskStore{
		repo:  repo,
		idGen: idGen,
	}
}

// Seed appends the initial tasks in order, skipping blank titles.
func (s *TaskStore) Seed(ctx context.Context, seeds []SeedTask) error {
	for _, seed := range seeds {
		task, added, err := s.Add(ctx, seed.Title)
		if err != nil {
			return fmt.Errorf("seed task %q: %w", seed.Title, err)
		}
		if !added || !seed.Completed {
			continue
		}
		if _, _, err := s.ToggleComplete(ctx, task.ID); err != nil {
			return fmt.Errorf("seed task %q: %w", seed.Title, err)
		}
	}
	return nil
}

// List returns tasks in insertion order.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	return s.repo.ListTasks(ctx)
}

// Add appends a pending task. It reports added=false when the title is blank.
func (s *TaskStore) Add(ctx context.Context, title string) (domain.Task, bool, error) {
	if strings.TrimSpace(title) == "" {
		return domain.Task{}, false, nil
	}
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		task, err := domain.NewTask(s.idGen(), title)
		if err != nil {
			return domain.Task{}, false, fmt.Errorf("build task: %w", err)
		}
		err = s.repo.AppendTask(ctx, task)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}
		if err != nil {
			return domain.Task{}, false, err
		}
		return task, true, nil
	}
	return domain.Task{}, false, fmt.Errorf("allocate task id: %w", ErrDuplicateID)
}

// ToggleComplete flips the completion flag of the matching task.
func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (domain.Task, bool, error) {
	return s.mutate(ctx, id, func(t *domain.Task) {
		t.ToggleComplete()
	})
}

// SetTitle replaces the title of the matching task. No validation is applied.
func (s *TaskStore) SetTitle(ctx context.Context, id, title string) (domain.Task, bool, error) {
	return s.mutate(ctx, id, func(t *domain.Task) {
		t.Rename(title)
	})
}

// Delete removes the matching task. Deleting an unknown ID is a no-op.
func (s *TaskStore) Delete(ctx context.Context, id string) (bool, error) {
	err := s.repo.DeleteTask(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// mutate loads one task, applies fn and writes it back with its ID intact.
func (s *TaskStore) mutate(ctx context.Context, id string, fn func(*domain.Task)) (domain.Task, bool, error) {
	task, err := s.repo.GetTask(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return domain.Task{}, false, nil
	}
	if err != nil {
		return domain.Task{}, false, err
	}
	fn(&task)
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Task{}, false, nil
		}
		return domain.Task{}, false, err
	}
	return task, true, nil
}
