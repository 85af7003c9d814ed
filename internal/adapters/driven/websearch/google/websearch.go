// Package google provides a web search adapter using the Google Custom
// Search JSON API.
package google

import (
	"context"
	"fmt"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driven.WebSearcher = (*Searcher)(nil)

// DefaultMaxResults is the result count requested per search. The Custom
// Search API caps a single request at 10.
const DefaultMaxResults = 10

// Config holds configuration for the Google web searcher.
type Config struct {
	// APIKey is the Custom Search API key (required).
	APIKey string

	// EngineID is the programmable search engine ID, the "cx" parameter
	// (required).
	EngineID string

	// MaxResults caps the results per search (default: 10, maximum: 10).
	MaxResults int

	// Endpoint overrides the API base URL, used in tests.
	Endpoint string
}

// Searcher performs web searches against a programmable search engine.
type Searcher struct {
	svc        *customsearch.Service
	engineID   string
	maxResults int
}

// NewSearcher creates a new Google web searcher.
func NewSearcher(ctx context.Context, cfg Config) (*Searcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("websearch: API key is required")
	}
	if cfg.EngineID == "" {
		return nil, fmt.Errorf("websearch: search engine ID is required")
	}
	if cfg.MaxResults <= 0 || cfg.MaxResults > DefaultMaxResults {
		cfg.MaxResults = DefaultMaxResults
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("websearch: create service: %w", err)
	}

	return &Searcher{
		svc:        svc,
		engineID:   cfg.EngineID,
		maxResults: cfg.MaxResults,
	}, nil
}

// Search runs the query and returns title, snippet, and link per hit.
func (s *Searcher) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	resp, err := s.svc.Cse.List().
		Q(query).
		Cx(s.engineID).
		Num(int64(s.maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("websearch: %w", err)
	}

	results := make([]domain.WebResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, domain.WebResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	logger.Debug("web search returned %d results", len(results))
	return results, nil
}
