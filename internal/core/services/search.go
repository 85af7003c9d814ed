package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.GroundingSearch = (*SearchService)(nil)

// Default retrieval limits.
const (
	// DefaultTitleQueryLimit caps per-source hits for the primary query.
	DefaultTitleQueryLimit = 5

	// DefaultScanRecordBudget caps per-source records enumerated by the
	// fallback scan. One source page by default; raising it makes the
	// store follow its cursor across pages.
	DefaultScanRecordBudget = 100

	// DefaultSourceTimeout bounds each per-source query so a hung source
	// cannot block the whole call.
	DefaultSourceTimeout = 15 * time.Second
)

// SearchConfig tunes the retrieval pipeline.
type SearchConfig struct {
	// TitleQueryLimit is the maximum hits per source for the primary
	// title query.
	TitleQueryLimit int

	// ScanRecordBudget is the maximum records enumerated per source
	// during the fallback scan.
	ScanRecordBudget int

	// SourceTimeout bounds each per-source query. Zero applies
	// DefaultSourceTimeout; a negative value disables the deadline.
	SourceTimeout time.Duration
}

// withDefaults fills unset limits.
func (c SearchConfig) withDefaults() SearchConfig {
	if c.TitleQueryLimit <= 0 {
		c.TitleQueryLimit = DefaultTitleQueryLimit
	}
	if c.ScanRecordBudget <= 0 {
		c.ScanRecordBudget = DefaultScanRecordBudget
	}
	switch {
	case c.SourceTimeout == 0:
		c.SourceTimeout = DefaultSourceTimeout
	case c.SourceTimeout < 0:
		c.SourceTimeout = 0
	}
	return c
}

// SearchService is the retrieval orchestrator. It loads the source registry,
// fans the primary title query out to every enabled source, and falls back
// to the keyword scan when a non-ASCII query matches nothing.
type SearchService struct {
	registry  *RegistryService
	knowledge driven.KnowledgeStore
	rules     domain.KeywordRules
	history   driven.HistoryStore
	cfg       SearchConfig
}

// NewSearchService creates a new search orchestrator.
func NewSearchService(
	registry *RegistryService,
	knowledge driven.KnowledgeStore,
	rules domain.KeywordRules,
	cfg SearchConfig,
) *SearchService {
	return &SearchService{
		registry:  registry,
		knowledge: knowledge,
		rules:     rules,
		cfg:       cfg.withDefaults(),
	}
}

// SetHistoryStore sets the optional history log. Recording failures are
// absorbed; history never affects retrieval.
func (s *SearchService) SetHistoryStore(store driven.HistoryStore) {
	s.history = store
}

// Search performs one top-level retrieval call.
//
// Failure semantics: a registry-load failure and a primary-query failure are
// fatal and surface as a single descriptive error; fallback-scan per-source
// failures are absorbed with a warning.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	logger.Section("Search Execution")
	logger.Debug("query: %q", query)

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}

	started := time.Now()

	sources, err := s.registry.EnabledSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("load source registry: %w", err)
	}
	if len(sources) == 0 {
		logger.Info("no enabled sources; returning empty result set")
		resp := &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}}
		s.record(ctx, resp, started)
		return resp, nil
	}

	results, err := s.primaryQuery(ctx, query, sources)
	if err != nil {
		return nil, fmt.Errorf("primary title query: %w", err)
	}

	resp := &domain.SearchResponse{Query: query, Results: results}

	if len(results) == 0 && domain.ContainsNonASCII(query) {
		resp.FallbackUsed = true
		resp.Results = s.fallbackScan(ctx, query, sources)
	}

	if resp.Results == nil {
		resp.Results = []domain.SearchResult{}
	}

	logger.Info("final results: %d (fallback: %t)", len(resp.Results), resp.FallbackUsed)
	s.record(ctx, resp, started)
	return resp, nil
}

// primaryQuery issues the exact-substring title query to every source in
// parallel. Results keep source order; within-source order is the source's.
// Any single source failure fails the whole call, after every branch has
// resolved.
func (s *SearchService) primaryQuery(
	ctx context.Context, query string, sources []domain.SourceDescriptor,
) ([]domain.SearchResult, error) {
	perSource := make([][]domain.SearchResult, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.SourceDescriptor) {
			defer wg.Done()

			qctx, cancel := s.sourceContext(ctx)
			defer cancel()

			records, err := s.knowledge.QueryByTitle(qctx, src.ID, query, s.cfg.TitleQueryLimit)
			if err != nil {
				errs[i] = &domain.SourceQueryError{SourceID: src.ID, Err: err}
				return
			}

			hits := make([]domain.SearchResult, 0, len(records))
			for _, rec := range records {
				hits = append(hits, domain.Normalise(rec, src))
			}
			logger.Debug("source %q: %d title hits", src.Name, len(hits))
			perSource[i] = hits
		}(i, src)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var results []domain.SearchResult
	for _, hits := range perSource {
		results = append(results, hits...)
	}
	return results, nil
}

// fallbackScan enumerates records from every source in parallel and accepts
// those whose composite searchable text contains at least one extracted
// keyword. A broken source is skipped with a warning; the scan continues
// with the remaining sources.
func (s *SearchService) fallbackScan(
	ctx context.Context, query string, sources []domain.SourceDescriptor,
) []domain.SearchResult {
	logger.Section("Fallback Scan")

	keywords := s.rules.Extract(query)
	logger.Debug("keywords: %v", keywords)
	if len(keywords) == 0 {
		logger.Info("no qualifying keywords; fallback scan yields nothing")
		return nil
	}

	perSource := make([][]domain.SearchResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src domain.SourceDescriptor) {
			defer wg.Done()

			qctx, cancel := s.sourceContext(ctx)
			defer cancel()

			records, err := s.knowledge.ListRecords(qctx, src.ID, s.cfg.ScanRecordBudget)
			if err != nil {
				logger.Warn("fallback: skipping source %q: %v", src.Name, err)
				return
			}

			var accepted []domain.SearchResult
			for _, rec := range records {
				result := domain.Normalise(rec, src)
				hits := domain.CountHits(domain.CompositeText(result), keywords)
				if hits < 1 {
					continue
				}
				result.HitCount = hits
				accepted = append(accepted, result)
			}
			logger.Debug("source %q: %d of %d records accepted", src.Name, len(accepted), len(records))
			perSource[i] = accepted
		}(i, src)
	}
	wg.Wait()

	var results []domain.SearchResult
	for _, accepted := range perSource {
		results = append(results, accepted...)
	}
	return results
}

// sourceContext derives the per-source query context, bounded by the
// configured timeout when one is set.
func (s *SearchService) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.SourceTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.SourceTimeout)
}

// record appends the call to the history log, if one is configured.
func (s *SearchService) record(ctx context.Context, resp *domain.SearchResponse, started time.Time) {
	if s.history == nil {
		return
	}
	entry := driven.HistoryEntry{
		Query:        resp.Query,
		Results:      len(resp.Results),
		FallbackUsed: resp.FallbackUsed,
		Elapsed:      time.Since(started),
		At:           started,
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("history: record failed: %v", err)
	}
}
