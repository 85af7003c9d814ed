// Package notion provides knowledge and registry store adapters backed by the
// Notion API.
package notion

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// Ensure Store implements the interfaces.
var (
	_ driven.KnowledgeStore = (*Store)(nil)
	_ driven.RegistryStore  = (*Store)(nil)
)

// Default configuration values.
const (
	// DefaultRequestsPerSecond matches the Notion API rate limit of roughly
	// three requests per second per integration.
	DefaultRequestsPerSecond = 3

	// maxPageSize is the largest page size the Notion API accepts.
	maxPageSize = 100

	// titlePropertyID is the fixed ID Notion assigns to every database's
	// title property, usable in filters regardless of the property's name.
	titlePropertyID = "title"
)

// Config holds configuration for the Notion store.
type Config struct {
	// Token is the Notion integration token (required).
	Token string

	// RegistryDatabaseID is the database holding the source registry
	// (required for registry operations).
	RegistryDatabaseID string

	// EnabledProperty is the checkbox property used to pre-filter registry
	// rows. Empty disables the filter and returns all rows.
	EnabledProperty string

	// RequestsPerSecond overrides the rate limit (default: 3).
	RequestsPerSecond float64
}

// databaseQuerier is the slice of the Notion client the store depends on.
type databaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// Store queries Notion databases for knowledge records and registry rows.
// All requests pass through a shared rate limiter.
type Store struct {
	db      databaseQuerier
	limiter *rate.Limiter
	cfg     Config
}

// NewStore creates a new Notion store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("notion: integration token is required")
	}
	client := notionapi.NewClient(notionapi.Token(cfg.Token))
	return newStore(client.Database, cfg), nil
}

func newStore(db databaseQuerier, cfg Config) *Store {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &Store{
		db:      db,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cfg:     cfg,
	}
}

// QueryByTitle returns records whose title contains substring, up to limit.
func (s *Store) QueryByTitle(ctx context.Context, sourceID, substring string, limit int) ([]domain.RawRecord, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}

	resp, err := s.query(ctx, sourceID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: titlePropertyID,
			Title:    &notionapi.TextFilterCondition{Contains: substring},
		},
		PageSize: limit,
	})
	if err != nil {
		return nil, err
	}

	return pagesToRecords(resp.Results), nil
}

// ListRecords returns up to maxRecords records from the database, following
// pagination cursors as needed.
func (s *Store) ListRecords(ctx context.Context, sourceID string, maxRecords int) ([]domain.RawRecord, error) {
	if maxRecords <= 0 {
		maxRecords = maxPageSize
	}

	var records []domain.RawRecord
	var cursor notionapi.Cursor
	for len(records) < maxRecords {
		pageSize := maxRecords - len(records)
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}

		resp, err := s.query(ctx, sourceID, &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, err
		}

		records = append(records, pagesToRecords(resp.Results)...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}

	if len(records) > maxRecords {
		records = records[:maxRecords]
	}
	return records, nil
}

// ListEnabledSourceRecords returns the registry rows, pre-filtered on the
// enabled checkbox when one is configured.
func (s *Store) ListEnabledSourceRecords(ctx context.Context) ([]domain.RawRecord, error) {
	if s.cfg.RegistryDatabaseID == "" {
		return nil, fmt.Errorf("notion: registry database ID is not configured")
	}

	req := &notionapi.DatabaseQueryRequest{PageSize: maxPageSize}
	if s.cfg.EnabledProperty != "" {
		req.Filter = notionapi.PropertyFilter{
			Property: s.cfg.EnabledProperty,
			Checkbox: &notionapi.CheckboxFilterCondition{Equals: true},
		}
	}

	var records []domain.RawRecord
	for {
		resp, err := s.query(ctx, s.cfg.RegistryDatabaseID, req)
		if err != nil {
			return nil, err
		}
		records = append(records, pagesToRecords(resp.Results)...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req.StartCursor = resp.NextCursor
	}

	logger.Debug("registry query returned %d rows", len(records))
	return records, nil
}

// query waits for the rate limiter and runs one database query.
func (s *Store) query(ctx context.Context, databaseID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	start := time.Now()
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("notion: rate limiter: %w", err)
	}

	resp, err := s.db.Query(ctx, notionapi.DatabaseID(databaseID), req)
	if err != nil {
		return nil, fmt.Errorf("notion: query database %s: %w", databaseID, err)
	}

	logger.Debug("notion query on %s took %s", databaseID, time.Since(start).Round(time.Millisecond))
	return resp, nil
}
