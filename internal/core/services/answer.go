package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// Context assembly limits.
const (
	// MaxKnowledgeBlocks caps knowledge-source blocks in the bundle.
	MaxKnowledgeBlocks = 10

	// MaxWebBlocks caps web-search blocks in the bundle.
	MaxWebBlocks = 10

	// SnippetRunes caps each rendered block body.
	SnippetRunes = 200
)

// Default prompt templates, overridable via the prompt store.
const (
	defaultAnswerSystem = "You are a helpful assistant. Answer the question " +
		"using the grounding context provided with it. Answer in the language " +
		"of the question. If the context does not cover the question, say so."

	defaultGroundingHeader = "Grounding context follows. Knowledge-source " +
		"entries take precedence over web results when they disagree."
)

// AnswerService assembles the grounding bundle and calls the generation
// capability. Knowledge-source blocks are rendered ahead of web blocks; each
// block is title + truncated body + link.
type AnswerService struct {
	search  driving.GroundingSearch
	web     driven.WebSearcher
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewAnswerService creates a new answer service. web and prompts are
// optional (can be nil); llm is required at call time.
func NewAnswerService(
	search driving.GroundingSearch,
	web driven.WebSearcher,
	llm driven.LLMService,
) *AnswerService {
	return &AnswerService{search: search, web: web, llm: llm}
}

// SetPromptStore sets the prompt store for loading customised prompts.
// If not set, the service uses the default prompts.
func (s *AnswerService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Answer retrieves grounding for the query and generates an answer.
// A knowledge-retrieval failure is fatal; a web-search failure degrades to
// knowledge-only grounding with a warning.
func (s *AnswerService) Answer(ctx context.Context, query string) (*domain.Answer, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	resp, err := s.search.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	var web []domain.WebResult
	if s.web != nil {
		web, err = s.web.Search(ctx, query)
		if err != nil {
			logger.Warn("web search failed, grounding on knowledge only: %v", err)
			web = nil
		}
	}

	knowledge := capResults(resp.Results, MaxKnowledgeBlocks)
	web = capWeb(web, MaxWebBlocks)

	prompt := s.buildPrompt(query, knowledge, web)
	logger.Debug("prompt: %d bytes, %d knowledge blocks, %d web blocks",
		len(prompt), len(knowledge), len(web))

	text, err := s.llm.Complete(ctx, prompt, driven.CompleteOptions{
		System: s.prompt(driven.PromptAnswerSystem, defaultAnswerSystem),
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Query:        query,
		Text:         strings.TrimSpace(text),
		Knowledge:    knowledge,
		Web:          web,
		FallbackUsed: resp.FallbackUsed,
	}, nil
}

// buildPrompt renders the grounding bundle: header instruction, then
// knowledge blocks, then web blocks, then the question.
func (s *AnswerService) buildPrompt(query string, knowledge []domain.SearchResult, web []domain.WebResult) string {
	var b strings.Builder

	b.WriteString(s.prompt(driven.PromptGroundingHeader, defaultGroundingHeader))
	b.WriteString("\n")

	if len(knowledge) > 0 {
		b.WriteString("\n## Knowledge sources\n")
		for _, r := range knowledge {
			label := r.Title
			if r.SourceName != "" {
				label = fmt.Sprintf("%s (%s)", r.Title, r.SourceName)
			}
			writeBlock(&b, label, r.Content, r.Link)
		}
	}

	if len(web) > 0 {
		b.WriteString("\n## Web results\n")
		for _, r := range web {
			writeBlock(&b, r.Title, r.Snippet, r.Link)
		}
	}

	b.WriteString("\n## Question\n")
	b.WriteString(query)
	b.WriteString("\n")

	return b.String()
}

// writeBlock renders one labeled grounding block.
func writeBlock(b *strings.Builder, title, body, link string) {
	fmt.Fprintf(b, "\n### %s\n", title)
	if body = Truncate(body, SnippetRunes); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	if link != "" {
		b.WriteString(link)
		b.WriteString("\n")
	}
}

// prompt loads a named prompt, falling back to the built-in default.
func (s *AnswerService) prompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	p, err := s.prompts.Load(name)
	if err != nil || strings.TrimSpace(p) == "" {
		return fallback
	}
	return p
}

// Truncate caps s at n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// capResults returns at most n knowledge results.
func capResults(results []domain.SearchResult, n int) []domain.SearchResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}

// capWeb returns at most n web results.
func capWeb(results []domain.WebResult, n int) []domain.WebResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}
