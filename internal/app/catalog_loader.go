package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/evanschultz/widgets/internal/domain"
)

// LoadState is the catalog loader lifecycle state.
type LoadState int

// LoadStateLoading and related constants enumerate loader states.
const (
	LoadStateLoading LoadState = iota
	LoadStateReady
	LoadStateFailed
)

// String returns the lower-case state name.
func (s LoadState) String() string {
	switch s {
	case LoadStateLoading:
		return "loading"
	case LoadStateReady:
		return "ready"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoaderConfig holds configuration for a catalog loader.
type LoaderConfig struct {
	// Timeout bounds the single fetch. Zero disables the bound.
	Timeout time.Duration
	Logger  Logger
}

// LoaderSnapshot is a point-in-time copy of loader state.
type LoaderSnapshot struct {
	State LoadState
	Items []domain.RemoteItem
	Err   error
}

// CatalogLoader fetches the product catalog exactly once per lifetime.
// Close tears the loader down; a fetch that settles afterwards is discarded.
type CatalogLoader struct {
	fetcher CatalogFetcher
	timeout time.Duration
	logger  Logger

	mu      sync.Mutex
	state   LoadState
	items   []domain.RemoteItem
	err     error
	started bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewCatalogLoader constructs a loader in the loading state.
func NewCatalogLoader(fetcher CatalogFetcher, cfg LoaderConfig) *CatalogLoader {
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &CatalogLoader{
		fetcher: fetcher,
		timeout: cfg.Timeout,
		logger:  logger,
		state:   LoadStateLoading,
		done:    make(chan struct{}),
	}
}

// Load issues the fetch on first call and blocks until it settles. Later
// calls wait for that same result instead of fetching again.
func (l *CatalogLoader) Load(ctx context.Context) (LoaderSnapshot, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return LoaderSnapshot{State: LoadStateLoading}, ErrLoaderClosed
	}
	if l.started {
		l.mu.Unlock()
		return l.wait(ctx)
	}
	l.started = true
	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if l.timeout > 0 {
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
	} else {
		fetchCtx, cancel = context.WithCancel(ctx)
	}
	l.cancel = cancel
	l.mu.Unlock()

	l.logger.Debug("catalog fetch start", "timeout", l.timeout)
	items, err := l.fetch(fetchCtx)
	cancel()
	return l.settle(items, err)
}

// fetch guards against a nil fetcher so the loader still reaches a final state.
func (l *CatalogLoader) fetch(ctx context.Context) ([]domain.RemoteItem, error) {
	if l.fetcher == nil {
		return nil, errNoFetcher
	}
	return l.fetcher.FetchItems(ctx)
}

// settle applies the fetch outcome unless the loader was closed meanwhile.
func (l *CatalogLoader) settle(items []domain.RemoteItem, err error) (LoaderSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	defer close(l.done)

	if l.closed {
		l.logger.Debug("catalog result discarded after close", "err", err)
		return l.snapshotLocked(), ErrLoaderClosed
	}
	if err != nil {
		l.state = LoadStateFailed
		l.items = nil
		l.err = err
		l.logger.Error("catalog fetch failed", "err", err)
		return l.snapshotLocked(), nil
	}
	l.state = LoadStateReady
	l.items = slices.Clone(items)
	l.err = nil
	l.logger.Info("catalog loaded", "items", len(items))
	return l.snapshotLocked(), nil
}

// wait blocks until the in-flight fetch settles or ctx ends.
func (l *CatalogLoader) wait(ctx context.Context) (LoaderSnapshot, error) {
	select {
	case <-l.done:
	case <-ctx.Done():
		return l.Snapshot(), ctx.Err()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return l.snapshotLocked(), ErrLoaderClosed
	}
	return l.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (l *CatalogLoader) Snapshot() LoaderSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *CatalogLoader) snapshotLocked() LoaderSnapshot {
	return LoaderSnapshot{
		State: l.state,
		Items: slices.Clone(l.items),
		Err:   l.err,
	}
}

// Close cancels an in-flight fetch and freezes the loader. It is idempotent.
func (l *CatalogLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
}
