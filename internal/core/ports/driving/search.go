package driving

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// GroundingSearch retrieves grounding snippets from the enabled knowledge
// sources. This is the externally visible entry point of the retrieval core.
type GroundingSearch interface {
	// Search runs the primary title query across all enabled sources and,
	// for non-ASCII queries that match nothing, the keyword fallback scan.
	// It fails when the registry load or the primary query cannot complete.
	Search(ctx context.Context, query string) (*domain.SearchResponse, error)
}
