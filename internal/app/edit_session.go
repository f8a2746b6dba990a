package app

import (
	"context"

	"github.com/evanschultz/widgets/internal/domain"
)

// TitleSetter is the store operation an edit session commits through.
type TitleSetter interface {
	SetTitle(ctx context.Context, id, title string) (domain.Task, bool, error)
}

// EditSession tracks the single task being renamed and its provisional text.
type EditSession struct {
	store    TitleSetter
	activeID string
	text     string
}

// NewEditSession constructs an idle edit session.
func NewEditSession(store TitleSetter) *EditSession {
	return &EditSession{store: store}
}

// Begin starts editing task, replacing any edit already in progress.
func (e *EditSession) Begin(task domain.Task) {
	e.activeID = task.ID
	e.text = task.Title
}

// UpdateText replaces the provisional text while an edit is active.
func (e *EditSession) UpdateText(text string) {
	if e.activeID == "" {
		return
	}
	e.text = text
}

// Active reports the task being edited.
func (e *EditSession) Active() (string, bool) {
	return e.activeID, e.activeID != ""
}

// Text returns the provisional title.
func (e *EditSession) Text() string {
	return e.text
}

// Commit writes the provisional text, even when empty, and ends the session.
// It reports whether a task was renamed.
func (e *EditSession) Commit(ctx context.Context) (bool, error) {
	id, ok := e.Active()
	if !ok {
		return false, nil
	}
	text := e.text
	e.activeID = ""
	e.text = ""
	_, changed, err := e.store.SetTitle(ctx, id, text)
	if err != nil {
		return false, err
	}
	return changed, nil
}
