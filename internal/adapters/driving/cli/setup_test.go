package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/core/services"
)

// mockSearchService implements driving.GroundingSearch for command tests.
type mockSearchService struct {
	resp *domain.SearchResponse
	err  error
}

func (m *mockSearchService) Search(_ context.Context, query string) (*domain.SearchResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}
	return &domain.SearchResponse{
		Query: query,
		Results: []domain.SearchResult{{
			Origin:     domain.OriginKnowledge,
			SourceID:   "4f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c",
			RecordID:   "rec-1",
			Title:      "ワンピース",
			Content:    "ワンピース\n尾田栄一郎",
			Link:       "https://www.notion.so/rec-1",
			SourceName: "漫画",
		}},
	}, nil
}

// mockSearchServiceError always fails.
type mockSearchServiceError struct{}

func (mockSearchServiceError) Search(context.Context, string) (*domain.SearchResponse, error) {
	return nil, errors.New("store unreachable")
}

// mockAnswerService implements driving.AnswerService for command tests.
type mockAnswerService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAnswerService) Answer(_ context.Context, query string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.answer != nil {
		return m.answer, nil
	}
	return &domain.Answer{
		Query: query,
		Text:  "答えの本文",
		Knowledge: []domain.SearchResult{
			{Title: "ワンピース", SourceName: "漫画"},
		},
	}, nil
}

// mockHistoryService implements driving.HistoryService for command tests.
type mockHistoryService struct {
	entries []driven.HistoryEntry
	err     error
}

func (m *mockHistoryService) Recent(context.Context, int) ([]driven.HistoryEntry, error) {
	return m.entries, m.err
}

// mockRegistryStore backs a real RegistryService in tests.
type mockRegistryStore struct {
	records []domain.RawRecord
	err     error
}

func (m *mockRegistryStore) ListEnabledSourceRecords(context.Context) ([]domain.RawRecord, error) {
	return m.records, m.err
}

// setupTestServices installs mock services and returns a cleanup func.
func setupTestServices() func() {
	oldSearch := searchService
	oldAnswer := answerService
	oldHistory := historyService
	oldRegistry := registryService
	oldWired := servicesWired

	searchService = &mockSearchService{}
	answerService = &mockAnswerService{}
	historyService = &mockHistoryService{}
	registryService = services.NewRegistryService(&mockRegistryStore{
		records: []domain.RawRecord{{
			ID: "reg-1",
			Fields: []domain.Field{
				{Name: "Name", Type: domain.FieldTitle, Text: "漫画"},
				{Name: "URL", Type: domain.FieldURL, URL: "https://www.notion.so/ws/4f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c"},
				{Name: "Description", Type: domain.FieldText, Text: "おすすめ漫画のリスト"},
				{Name: "Enabled", Type: domain.FieldCheckbox, Checked: true},
			},
		}},
	}, services.RegistryConfig{})
	servicesWired = true

	return func() {
		searchService = oldSearch
		answerService = oldAnswer
		historyService = oldHistory
		registryService = oldRegistry
		servicesWired = oldWired
	}
}
