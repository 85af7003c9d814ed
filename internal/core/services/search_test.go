package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
)

// mockKnowledgeStore implements driven.KnowledgeStore for testing.
// Call counters are guarded because the orchestrator fans out per source.
type mockKnowledgeStore struct {
	mu sync.Mutex

	titleHits map[string][]domain.RawRecord
	records   map[string][]domain.RawRecord
	titleErr  map[string]error
	listErr   map[string]error

	titleCalls int
	listCalls  int
	lastLimit  int
	lastBudget int
}

func (m *mockKnowledgeStore) QueryByTitle(_ context.Context, sourceID, _ string, limit int) ([]domain.RawRecord, error) {
	m.mu.Lock()
	m.titleCalls++
	m.lastLimit = limit
	m.mu.Unlock()

	if err := m.titleErr[sourceID]; err != nil {
		return nil, err
	}
	hits := m.titleHits[sourceID]
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *mockKnowledgeStore) ListRecords(_ context.Context, sourceID string, maxRecords int) ([]domain.RawRecord, error) {
	m.mu.Lock()
	m.listCalls++
	m.lastBudget = maxRecords
	m.mu.Unlock()

	if err := m.listErr[sourceID]; err != nil {
		return nil, err
	}
	records := m.records[sourceID]
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}
	return records, nil
}

func (m *mockKnowledgeStore) counts() (titles, lists int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.titleCalls, m.listCalls
}

// mockHistoryStore implements driven.HistoryStore for testing.
type mockHistoryStore struct {
	mu      sync.Mutex
	entries []driven.HistoryEntry
	err     error
}

func (m *mockHistoryStore) Record(_ context.Context, entry driven.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, limit int) ([]driven.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]driven.HistoryEntry, 0, limit)
	for i := len(m.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}

func (m *mockHistoryStore) Close() error { return nil }

// page builds a knowledge record with a title and optional body text.
func page(id, title, body string) domain.RawRecord {
	fields := []domain.Field{{Name: "Name", Type: domain.FieldTitle, Text: title}}
	if body != "" {
		fields = append(fields, domain.Field{Name: "Memo", Type: domain.FieldText, Text: body})
	}
	return domain.RawRecord{ID: id, URL: "https://www.notion.so/" + id, Fields: fields}
}

// newTestSearch wires a SearchService over mock stores with two sources:
// 漫画 (hexA) and 料理 (hexB).
func newTestSearch(knowledge *mockKnowledgeStore) *SearchService {
	registry := NewRegistryService(&mockRegistryStore{records: []domain.RawRecord{
		registryRecord("漫画", "https://host/"+hexA, "おすすめ漫画のリスト", true),
		registryRecord("料理", "https://host/"+hexB, "レシピ集", true),
	}}, RegistryConfig{})
	return NewSearchService(registry, knowledge, domain.DefaultKeywordRules(), SearchConfig{})
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newTestSearch(&mockKnowledgeStore{})

	_, err := svc.Search(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidQuery)
}

func TestSearch_EmptyRegistryReturnsEmptySet(t *testing.T) {
	registry := NewRegistryService(&mockRegistryStore{}, RegistryConfig{})
	knowledge := &mockKnowledgeStore{}
	svc := NewSearchService(registry, knowledge, domain.DefaultKeywordRules(), SearchConfig{})

	resp, err := svc.Search(context.Background(), "query")

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.False(t, resp.FallbackUsed)
	titles, lists := knowledge.counts()
	assert.Zero(t, titles)
	assert.Zero(t, lists)
}

func TestSearch_RegistryFailureIsFatal(t *testing.T) {
	registry := NewRegistryService(&mockRegistryStore{err: errors.New("network")}, RegistryConfig{})
	svc := NewSearchService(registry, &mockKnowledgeStore{}, domain.DefaultKeywordRules(), SearchConfig{})

	_, err := svc.Search(context.Background(), "query")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestSearch_PrimaryHitsSkipFallback(t *testing.T) {
	knowledge := &mockKnowledgeStore{
		titleHits: map[string][]domain.RawRecord{
			hexA: {page("p1", "ワンピース", "海賊漫画")},
		},
	}
	svc := newTestSearch(knowledge)

	resp, err := svc.Search(context.Background(), "ワンピース")

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.FallbackUsed)
	assert.Equal(t, "ワンピース", resp.Results[0].Title)
	assert.Equal(t, domain.OriginKnowledge, resp.Results[0].Origin)
	_, lists := knowledge.counts()
	assert.Zero(t, lists, "fallback must not run when primary has hits")
}

func TestSearch_ASCIIQueryNeverFallsBack(t *testing.T) {
	knowledge := &mockKnowledgeStore{}
	svc := newTestSearch(knowledge)

	resp, err := svc.Search(context.Background(), "one piece")

	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.False(t, resp.FallbackUsed)
	_, lists := knowledge.counts()
	assert.Zero(t, lists, "fallback must not run for pure-ASCII queries")
}

func TestSearch_NonASCIIZeroHitsTriggersFallback(t *testing.T) {
	knowledge := &mockKnowledgeStore{
		records: map[string][]domain.RawRecord{
			hexA: {
				page("p1", "ワンピース", ""),
				page("p2", "カレーの作り方", ""),
			},
		},
	}
	svc := newTestSearch(knowledge)

	// No title contains the query, but source A's name 漫画 and usage hint
	// match the extracted keywords, so every record of source A composites
	// to a hit.
	resp, err := svc.Search(context.Background(), "おすすめの漫画を教えて")

	require.NoError(t, err)
	assert.True(t, resp.FallbackUsed)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "ワンピース", resp.Results[0].Title)
	assert.GreaterOrEqual(t, resp.Results[0].HitCount, 1)
}

func TestSearch_FallbackAcceptsViaSourceNameOnly(t *testing.T) {
	// Record with empty body and a title matching no keyword is still
	// accepted because the source name 漫画 is part of the composite text.
	registry := NewRegistryService(&mockRegistryStore{records: []domain.RawRecord{
		registryRecord("漫画", "https://host/"+hexA, "", true),
	}}, RegistryConfig{})
	knowledge := &mockKnowledgeStore{
		records: map[string][]domain.RawRecord{
			hexA: {page("p1", "ワンピース", "")},
		},
	}
	svc := NewSearchService(registry, knowledge, domain.DefaultKeywordRules(), SearchConfig{})

	resp, err := svc.Search(context.Background(), "おすすめの漫画を教えて")

	require.NoError(t, err)
	assert.True(t, resp.FallbackUsed)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "ワンピース", resp.Results[0].Title)
	assert.Equal(t, 1, resp.Results[0].HitCount)
}

func TestSearch_FallbackRejectsWithoutKeywordHit(t *testing.T) {
	registry := NewRegistryService(&mockRegistryStore{records: []domain.RawRecord{
		registryRecord("料理", "https://host/"+hexB, "レシピ集", true),
	}}, RegistryConfig{})
	knowledge := &mockKnowledgeStore{
		records: map[string][]domain.RawRecord{
			hexB: {page("p1", "カレー", "スパイスから作る")},
		},
	}
	svc := NewSearchService(registry, knowledge, domain.DefaultKeywordRules(), SearchConfig{})

	resp, err := svc.Search(context.Background(), "おすすめの漫画を教えて")

	require.NoError(t, err)
	assert.True(t, resp.FallbackUsed)
	assert.Empty(t, resp.Results)
}

func TestSearch_SourceOrderPreserved(t *testing.T) {
	knowledge := &mockKnowledgeStore{
		titleHits: map[string][]domain.RawRecord{
			hexA: {page("a1", "漫画タイトル一", ""), page("a2", "漫画タイトル二", "")},
			hexB: {page("b1", "漫画レシピ", "")},
		},
	}
	svc := newTestSearch(knowledge)

	resp, err := svc.Search(context.Background(), "漫画")

	require.NoError(t, err)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, "a1", resp.Results[0].RecordID)
	assert.Equal(t, "a2", resp.Results[1].RecordID)
	assert.Equal(t, "b1", resp.Results[2].RecordID)
	assert.Equal(t, hexA, resp.Results[0].SourceID)
	assert.Equal(t, hexB, resp.Results[2].SourceID)
}

func TestSearch_PrimaryFailureIsFatal(t *testing.T) {
	knowledge := &mockKnowledgeStore{
		titleErr: map[string]error{hexB: errors.New("boom")},
		titleHits: map[string][]domain.RawRecord{
			hexA: {page("a1", "ワンピース", "")},
		},
	}
	svc := newTestSearch(knowledge)

	_, err := svc.Search(context.Background(), "ワンピース")

	require.Error(t, err)
	var sqErr *domain.SourceQueryError
	require.ErrorAs(t, err, &sqErr)
	assert.Equal(t, hexB, sqErr.SourceID)
}

func TestSearch_FallbackIsolatesSourceFailures(t *testing.T) {
	knowledge := &mockKnowledgeStore{
		listErr: map[string]error{hexA: errors.New("boom")},
		records: map[string][]domain.RawRecord{
			hexB: {page("b1", "漫画飯", "")},
		},
	}
	svc := newTestSearch(knowledge)

	resp, err := svc.Search(context.Background(), "おすすめの漫画を教えて")

	require.NoError(t, err, "a broken source must not abort the fallback scan")
	assert.True(t, resp.FallbackUsed)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "b1", resp.Results[0].RecordID)
}

func TestSearch_LimitsPassedToStore(t *testing.T) {
	knowledge := &mockKnowledgeStore{}
	registry := NewRegistryService(&mockRegistryStore{records: []domain.RawRecord{
		registryRecord("漫画", "https://host/"+hexA, "", true),
	}}, RegistryConfig{})
	svc := NewSearchService(registry, knowledge, domain.DefaultKeywordRules(), SearchConfig{
		TitleQueryLimit:  7,
		ScanRecordBudget: 250,
	})

	_, err := svc.Search(context.Background(), "漫画")

	require.NoError(t, err)
	knowledge.mu.Lock()
	defer knowledge.mu.Unlock()
	assert.Equal(t, 7, knowledge.lastLimit)
	assert.Equal(t, 250, knowledge.lastBudget)
}

func TestSearch_DefaultLimits(t *testing.T) {
	cfg := SearchConfig{}.withDefaults()

	assert.Equal(t, DefaultTitleQueryLimit, cfg.TitleQueryLimit)
	assert.Equal(t, DefaultScanRecordBudget, cfg.ScanRecordBudget)
}

func TestSearch_RecordsHistory(t *testing.T) {
	knowledge := &mockKnowledgeStore{
		records: map[string][]domain.RawRecord{
			hexA: {page("p1", "ワンピース", "")},
		},
	}
	history := &mockHistoryStore{}
	svc := newTestSearch(knowledge)
	svc.SetHistoryStore(history)

	_, err := svc.Search(context.Background(), "おすすめの漫画を教えて")

	require.NoError(t, err)
	require.Len(t, history.entries, 1)
	assert.Equal(t, "おすすめの漫画を教えて", history.entries[0].Query)
	assert.Equal(t, 1, history.entries[0].Results)
	assert.True(t, history.entries[0].FallbackUsed)
}

func TestSearch_HistoryFailureIsAbsorbed(t *testing.T) {
	knowledge := &mockKnowledgeStore{}
	svc := newTestSearch(knowledge)
	svc.SetHistoryStore(&mockHistoryStore{err: errors.New("disk full")})

	_, err := svc.Search(context.Background(), "one piece")

	assert.NoError(t, err, "history failures must never affect retrieval")
}

// blockingKnowledgeStore blocks every query until its context is done.
type blockingKnowledgeStore struct{}

func (blockingKnowledgeStore) QueryByTitle(ctx context.Context, _, _ string, _ int) ([]domain.RawRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingKnowledgeStore) ListRecords(ctx context.Context, _ string, _ int) ([]domain.RawRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestSearchConfig_DefaultSourceTimeoutApplied(t *testing.T) {
	cfg := SearchConfig{}.withDefaults()

	assert.Equal(t, DefaultSourceTimeout, cfg.SourceTimeout)
}

func TestSearchConfig_NegativeSourceTimeoutDisablesDeadline(t *testing.T) {
	cfg := SearchConfig{SourceTimeout: -1}.withDefaults()

	assert.Equal(t, time.Duration(0), cfg.SourceTimeout)
}

func TestSearch_SourceTimeoutUnblocksHungSource(t *testing.T) {
	registry := NewRegistryService(&mockRegistryStore{records: []domain.RawRecord{
		registryRecord("漫画", "https://host/"+hexA, "", true),
	}}, RegistryConfig{})
	svc := NewSearchService(registry, blockingKnowledgeStore{}, domain.DefaultKeywordRules(),
		SearchConfig{SourceTimeout: 20 * time.Millisecond})

	done := make(chan error, 1)
	go func() {
		_, err := svc.Search(context.Background(), "ワンピース")
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		var sqErr *domain.SourceQueryError
		require.ErrorAs(t, err, &sqErr)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("search did not return; per-source deadline was not applied")
	}
}
