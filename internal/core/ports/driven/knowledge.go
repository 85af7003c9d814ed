package driven

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// KnowledgeStore is the knowledge-source query capability. Implementations
// address a hosted structured collection of records (a "database") by its
// source ID and return raw records for normalisation by the core.
type KnowledgeStore interface {
	// QueryByTitle returns up to limit records whose title contains the
	// given substring, in the order returned by the source.
	QueryByTitle(ctx context.Context, sourceID, substring string, limit int) ([]domain.RawRecord, error)

	// ListRecords enumerates up to maxRecords records from the source,
	// following the source's cursor across pages when maxRecords exceeds
	// a single page.
	ListRecords(ctx context.Context, sourceID string, maxRecords int) ([]domain.RawRecord, error)
}
