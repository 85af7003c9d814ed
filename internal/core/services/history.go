package services

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the recorded search history.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service. store may be nil, in
// which case Recent returns an empty list.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit entries, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	if s.store == nil {
		return []driven.HistoryEntry{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.Recent(ctx, limit)
}
