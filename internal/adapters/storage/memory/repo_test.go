package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/evanschultz/widgets/internal/app"
	"github.com/evanschultz/widgets/internal/domain"
)

func TestRepositoryTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := New()

	for _, task := range []domain.Task{
		{ID: "1", Title: "Buy groceries", Completed: true},
		{ID: "2", Title: "Walk the dog"},
		{ID: "3", Title: "Read"},
	} {
		if err := repo.AppendTask(ctx, task); err != nil {
			t.Fatalf("AppendTask(%s) error = %v", task.ID, err)
		}
	}
	if err := repo.AppendTask(ctx, domain.Task{ID: "2", Title: "dup"}); !errors.Is(err, app.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	if err := repo.UpdateTask(ctx, domain.Task{ID: "2", Title: "Walk the cat", Completed: true}); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	got, err := repo.GetTask(ctx, "2")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if got.Title != "Walk the cat" || !got.Completed {
		t.Fatalf("unexpected updated task %#v", got)
	}

	if err := repo.DeleteTask(ctx, "1"); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "2" || tasks[1].ID != "3" {
		t.Fatalf("expected insertion order kept after delete, got %#v", tasks)
	}

	tasks[0].Title = "mutated"
	again, _ := repo.GetTask(ctx, "2")
	if again.Title != "Walk the cat" {
		t.Fatal("expected ListTasks to return a copy")
	}
}

func TestRepositoryMissingTask(t *testing.T) {
	ctx := context.Background()
	repo := New()

	if _, err := repo.GetTask(ctx, "nope"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("GetTask() expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateTask(ctx, domain.Task{ID: "nope"}); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("UpdateTask() expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteTask(ctx, "nope"); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("DeleteTask() expected ErrNotFound, got %v", err)
	}
}
