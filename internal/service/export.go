package service

import (
	"context"
	"fmt"

	"github.com/fletesapp/backend/internal/domain"
)

// ExportService assembles the flat trip listing: every trip joined with its
// client, carrier, and delivery record. Serialization to a file format is
// the caller's concern; this service only produces rows.
type ExportService struct {
	store Store
}

// NewExportService constructs an ExportService backed by the provided store.
func NewExportService(store Store) *ExportService {
	return &ExportService{store: store}
}

// Rows returns the listing filtered by state, client, unit type, date range,
// and free-text search. Always returns a non-nil slice.
func (s *ExportService) Rows(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error) {
	rows, err := s.store.Repos().Listing.Rows(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}
	if rows == nil {
		return []domain.TripRow{}, nil
	}
	return rows, nil
}
