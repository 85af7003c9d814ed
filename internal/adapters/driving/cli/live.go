package cli

import (
	"context"
	"errors"
	"sync"

	configfile "github.com/custodia-labs/kotae-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// liveServices routes requests to the current service graph so a settings
// reload can swap the services under a running server without a restart.
type liveServices struct {
	mu  sync.RWMutex
	set serviceSet
}

func newLiveServices(set serviceSet) *liveServices {
	return &liveServices{set: set}
}

// swap publishes a freshly built service set and closes the history store
// the old set held, if it was replaced.
func (l *liveServices) swap(set serviceSet) {
	l.mu.Lock()
	old := l.set
	l.set = set
	l.mu.Unlock()

	if old.historyStore != nil && old.historyStore != set.historyStore {
		if err := old.historyStore.Close(); err != nil {
			logger.Warn("close replaced history store: %v", err)
		}
	}
}

func (l *liveServices) current() serviceSet {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.set
}

// watchSettings rebuilds the service graph whenever the settings file
// changes. A snapshot that fails to build keeps the previous services.
func (l *liveServices) watchSettings(ctx context.Context) {
	if settingsStore == nil {
		return
	}
	err := settingsStore.Watch(ctx, func(settings configfile.Settings) {
		set, err := buildServices(settings)
		if err != nil {
			logger.Warn("settings reload: keeping previous services: %v", err)
			return
		}
		l.swap(set)
		logger.Info("services rewired from updated settings")
	})
	if err != nil {
		logger.Warn("settings watch unavailable: %v", err)
	}
}

// Search implements driving.GroundingSearch.
func (l *liveServices) Search(ctx context.Context, query string) (*domain.SearchResponse, error) {
	set := l.current()
	if set.search == nil {
		return nil, errors.New("search is not configured")
	}
	return set.search.Search(ctx, query)
}

// Answer implements driving.AnswerService.
func (l *liveServices) Answer(ctx context.Context, query string) (*domain.Answer, error) {
	set := l.current()
	if set.answer == nil {
		return nil, domain.ErrLLMUnavailable
	}
	return set.answer.Answer(ctx, query)
}

// Recent implements driving.HistoryService.
func (l *liveServices) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	set := l.current()
	if set.history == nil {
		return []driven.HistoryEntry{}, nil
	}
	return set.history.Recent(ctx, limit)
}

// EnabledSources implements the source listing consumed by the MCP server.
func (l *liveServices) EnabledSources(ctx context.Context) ([]domain.SourceDescriptor, error) {
	set := l.current()
	if set.registry == nil {
		return []domain.SourceDescriptor{}, nil
	}
	return set.registry.EnabledSources(ctx)
}
