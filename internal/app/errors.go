package app

import "errors"

// ErrNotFound and related errors describe repository and loader failures.
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateID  = errors.New("duplicate id")
	ErrLoaderClosed = errors.New("catalog loader closed")

	errNoFetcher = errors.New("catalog fetcher is not configured")
)
