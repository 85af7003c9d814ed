package driven

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// WebSearcher is the sibling web-search capability consumed by the context
// assembler. This is an optional service - when nil, grounding degrades to
// knowledge sources only.
type WebSearcher interface {
	// Search returns web hits for the query, best first as ranked by the
	// provider. The core applies its own result cap.
	Search(ctx context.Context, query string) ([]domain.WebResult, error)
}
