package driven

import (
	"context"
	"time"
)

// HistoryEntry is one recorded retrieval call.
type HistoryEntry struct {
	// Query is the raw query string.
	Query string

	// Results is the number of results returned.
	Results int

	// FallbackUsed reports whether the keyword fallback produced the
	// result set.
	FallbackUsed bool

	// Elapsed is the wall-clock duration of the call.
	Elapsed time.Duration

	// At is when the call started.
	At time.Time
}

// HistoryStore persists the search history log. This is an optional
// service - when nil, calls are simply not recorded.
type HistoryStore interface {
	// Record appends one entry to the log.
	Record(ctx context.Context, entry HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)

	// Close releases resources.
	Close() error
}
