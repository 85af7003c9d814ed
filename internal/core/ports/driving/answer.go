package driving

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// AnswerService produces a grounded answer: knowledge-source and web-search
// results are merged into a grounding bundle and passed to the generation
// capability.
type AnswerService interface {
	// Answer retrieves grounding for the query and generates an answer.
	Answer(ctx context.Context, query string) (*domain.Answer, error)
}
