package domain

import "strings"

type Task struct {
	ID        string
	Title     string
	Completed bool
}

// NewTask builds a pending task. A title that trims to nothing is rejected,
// otherwise it is stored exactly as typed.
func NewTask(id, title string) (Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Task{}, ErrInvalidID
	}
	if strings.TrimSpace(title) == "" {
		return Task{}, ErrInvalidTitle
	}
	return Task{
		ID:    id,
		Title: title,
	}, nil
}

func (t *Task) ToggleComplete() {
	t.Completed = !t.Completed
}

// Rename replaces the title without validation; edits may clear it.
func (t *Task) Rename(title string) {
	t.Title = title
}

// StatusLabel returns the badge text shown next to the task.
func (t Task) StatusLabel() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}
