package driving

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
)

// HistoryService exposes the recorded search history.
type HistoryService interface {
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error)
}
