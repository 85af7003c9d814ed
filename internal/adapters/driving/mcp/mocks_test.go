package mcp

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// mockGroundingSearch implements driving.GroundingSearch for testing.
type mockGroundingSearch struct {
	resp *domain.SearchResponse
	err  error
}

func (m *mockGroundingSearch) Search(_ context.Context, query string) (*domain.SearchResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}
	return &domain.SearchResponse{Query: query, Results: []domain.SearchResult{}}, nil
}

// mockSourceLister implements SourceLister for testing.
type mockSourceLister struct {
	sources []domain.SourceDescriptor
	err     error
}

func (m *mockSourceLister) EnabledSources(context.Context) ([]domain.SourceDescriptor, error) {
	return m.sources, m.err
}

// mockAnswerService implements driving.AnswerService for testing.
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
	return &domain.Answer{Query: query}, nil
}
