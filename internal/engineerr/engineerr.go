// Package engineerr defines the sentinel error kinds the suggestion engine
// raises (spec §7), checked by callers with errors.Is.
package engineerr

import "errors"

var (
	// ErrInvalidWord is fatal for the affected Word at ingest time.
	ErrInvalidWord = errors.New("engine: invalid word")
	// ErrNotInitialized is returned when Suggest/SuggestStream is called
	// before Initialize.
	ErrNotInitialized = errors.New("engine: not initialized")
	// ErrCancelled marks a request preempted or externally cancelled.
	// Surfaced as a sentinel stream event, never as a returned error from
	// the streaming API.
	ErrCancelled = errors.New("engine: request cancelled")
	// ErrTimeout marks a request that exceeded its wall-clock budget.
	ErrTimeout = errors.New("engine: request timed out")
	// ErrInternal marks an unexpected failure inside a worker.
	ErrInternal = errors.New("engine: internal error")
)
