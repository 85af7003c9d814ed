package mcp

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
)

// SourceLister exposes the enabled knowledge sources from the registry.
type SourceLister interface {
	EnabledSources(ctx context.Context) ([]domain.SourceDescriptor, error)
}

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides retrieval over the registered knowledge sources.
	Search driving.GroundingSearch

	// Answer provides grounded answer generation. Optional; when nil the
	// ask tool is not registered.
	Answer driving.AnswerService

	// Sources lists the enabled knowledge sources. Optional; when nil the
	// sources resource returns an empty list.
	Sources SourceLister
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
