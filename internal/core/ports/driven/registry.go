package driven

import (
	"context"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

// RegistryStore is the configuration-store query capability. It lists the
// registry records describing knowledge sources, pre-filtered to those whose
// enabled flag is set. Records have the same raw shape as knowledge-source
// records; parsing them into SourceDescriptors is the core's job.
type RegistryStore interface {
	// ListEnabledSourceRecords returns the raw registry records for
	// enabled sources. A failure here is fatal for the retrieval call.
	ListEnabledSourceRecords(ctx context.Context) ([]domain.RawRecord, error)
}
