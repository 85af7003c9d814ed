package domain

import (
	"fmt"
	"strings"
)

// UnnamedSource is the display name used when a registry record carries no name.
const UnnamedSource = "(unnamed source)"

// SourceDescriptor describes one enabled knowledge source from the registry.
// Descriptors are immutable for the lifetime of a single retrieval call and
// re-fetched on every top-level search; staleness is traded for simplicity.
type SourceDescriptor struct {
	// ID is the opaque handle used to address the knowledge source.
	// For Notion-backed sources this is the 32-character hex database ID.
	ID string

	// Name is the human label for the source (e.g. a category name).
	Name string

	// UsageHint is a free-text description of what the source contains.
	// It participates in the fallback scan's composite searchable text.
	UsageHint string

	// Enabled reports whether the source is active in the registry.
	Enabled bool
}

// sourceIDLen is the length of a hex knowledge-source identifier.
const sourceIDLen = 32

// SourceIDFromLocator derives a knowledge-source ID from a locator URL.
//
// The path segment after the last "/" is taken, a trailing query string is
// discarded, and if the remainder is not already a valid identifier the
// substring after the last "-" is tried. A locator that yields no
// 32-character hexadecimal identifier by either method is rejected with
// ErrBadLocator.
func SourceIDFromLocator(locator string) (string, error) {
	if locator == "" {
		return "", fmt.Errorf("%w: empty locator", ErrBadLocator)
	}

	segment := locator
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.Index(segment, "?"); i >= 0 {
		segment = segment[:i]
	}

	if isHexID(segment) {
		return segment, nil
	}

	// Notion page URLs embed the ID after the human-readable slug:
	// https://host/Workspace-Name-4f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c
	if i := strings.LastIndex(segment, "-"); i >= 0 {
		if tail := segment[i+1:]; isHexID(tail) {
			return tail, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrBadLocator, locator)
}

// isHexID reports whether s is a 32-character lowercase-insensitive hex string.
func isHexID(s string) bool {
	if len(s) != sourceIDLen {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
