package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// RegistryConfig names the registry record properties the loader reads.
// Zero values fall back to the conventional property names.
type RegistryConfig struct {
	// NameProperty selects the property holding the display name.
	// Empty falls back to the record's title field.
	NameProperty string

	// LocatorProperty is the url/text property holding the source locator.
	LocatorProperty string

	// HintProperty is the free-text property holding the usage hint.
	HintProperty string

	// EnabledProperty is the checkbox property holding the enabled flag.
	EnabledProperty string
}

// Conventional registry property names.
const (
	DefaultLocatorProperty = "URL"
	DefaultHintProperty    = "Description"
	DefaultEnabledProperty = "Enabled"
)

// withDefaults fills unset property names.
func (c RegistryConfig) withDefaults() RegistryConfig {
	if c.LocatorProperty == "" {
		c.LocatorProperty = DefaultLocatorProperty
	}
	if c.HintProperty == "" {
		c.HintProperty = DefaultHintProperty
	}
	if c.EnabledProperty == "" {
		c.EnabledProperty = DefaultEnabledProperty
	}
	return c
}

// RegistryService loads the enabled knowledge sources from the
// configuration store. Descriptors are re-fetched on every top-level search;
// nothing is cached across calls.
type RegistryService struct {
	store driven.RegistryStore
	cfg   RegistryConfig
}

// NewRegistryService creates a new registry loader.
func NewRegistryService(store driven.RegistryStore, cfg RegistryConfig) *RegistryService {
	return &RegistryService{store: store, cfg: cfg.withDefaults()}
}

// EnabledSources returns the descriptors of all enabled knowledge sources,
// in registry order. Records that are disabled, or whose locator cannot be
// resolved to a source identifier, are skipped; only a failure of the
// registry query itself propagates.
func (s *RegistryService) EnabledSources(ctx context.Context) ([]domain.SourceDescriptor, error) {
	records, err := s.store.ListEnabledSourceRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}

	sources := make([]domain.SourceDescriptor, 0, len(records))
	for _, rec := range records {
		desc, ok := s.parseRecord(rec)
		if !ok {
			continue
		}
		sources = append(sources, desc)
	}

	logger.Debug("registry: %d records, %d enabled sources", len(records), len(sources))
	return sources, nil
}

// parseRecord turns one registry record into a descriptor. The enabled
// check runs before locator validation; both must pass.
func (s *RegistryService) parseRecord(rec domain.RawRecord) (domain.SourceDescriptor, bool) {
	if !s.isEnabled(rec) {
		return domain.SourceDescriptor{}, false
	}

	name := domain.UnnamedSource
	if s.cfg.NameProperty != "" {
		if t := strings.TrimSpace(rec.TextField(s.cfg.NameProperty)); t != "" {
			name = t
		}
	}
	if name == domain.UnnamedSource {
		if f, ok := rec.TitleField(); ok {
			if t := strings.TrimSpace(f.Text); t != "" {
				name = t
			}
		}
	}

	locator := rec.TextField(s.cfg.LocatorProperty)
	id, err := domain.SourceIDFromLocator(locator)
	if err != nil {
		logger.Warn("registry: skipping source %q: %v", name, err)
		return domain.SourceDescriptor{}, false
	}

	return domain.SourceDescriptor{
		ID:        id,
		Name:      name,
		UsageHint: rec.TextField(s.cfg.HintProperty),
		Enabled:   true,
	}, true
}

// isEnabled reports whether the record's enabled checkbox allows the source.
// The store already filters on the flag; a record that carries the checkbox
// field explicitly set to false is still rejected here so that stores
// without server-side filtering behave identically.
func (s *RegistryService) isEnabled(rec domain.RawRecord) bool {
	for _, f := range rec.Fields {
		if f.Type == domain.FieldCheckbox && f.Name == s.cfg.EnabledProperty {
			return f.Checked
		}
	}
	return true
}
