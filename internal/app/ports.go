package app

import (
	"context"

	"github.com/evanschultz/widgets/internal/domain"
)

// TaskRepository stores tasks in insertion order.
type TaskRepository interface {
	AppendTask(context.Context, domain.Task) error
	UpdateTask(context.Context, domain.Task) error
	GetTask(context.Context, string) (domain.Task, error)
	ListTasks(context.Context) ([]domain.Task, error)
	DeleteTask(context.Context, string) error
}

// CatalogFetcher performs one read of the remote product catalog.
type CatalogFetcher interface {
	FetchItems(context.Context) ([]domain.RemoteItem, error)
}

// Logger is the diagnostic channel for background work.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// nopLogger discards every event.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
