package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidQuery indicates an empty or missing query string.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrBadLocator indicates a registry record's locator could not be
	// resolved to a knowledge-source identifier. Non-fatal: the record is
	// skipped with a warning.
	ErrBadLocator = errors.New("locator yields no source identifier")

	// ErrRegistryUnavailable indicates the source registry could not be
	// loaded. Fatal for the whole retrieval call.
	ErrRegistryUnavailable = errors.New("source registry unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrWebSearchUnavailable indicates the web-search provider is not
	// configured. Grounding degrades to knowledge sources only.
	ErrWebSearchUnavailable = errors.New("web search unavailable")
)

// SourceQueryError reports that a single knowledge source's query failed.
// It is fatal during the primary title query and non-fatal (skip and
// continue) during the fallback scan.
type SourceQueryError struct {
	// SourceID identifies the failing source.
	SourceID string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *SourceQueryError) Error() string {
	return fmt.Sprintf("source %s: query failed: %v", e.SourceID, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceQueryError) Unwrap() error {
	return e.Err
}
