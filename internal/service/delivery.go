package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
)

// DeliveryService manages delivery records (remitos): proof-of-delivery
// metadata attached one-to-one to trips. The document itself lives in
// external storage; only its opaque reference is stored here.
type DeliveryService struct {
	store Store
}

// NewDeliveryService constructs a DeliveryService backed by the provided store.
func NewDeliveryService(store Store) *DeliveryService {
	return &DeliveryService{store: store}
}

// Attach creates the trip's delivery record. A trip can carry at most one;
// a second attach fails with domain.ErrValidation.
func (s *DeliveryService) Attach(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error) {
	if strings.TrimSpace(rec.Number) == "" {
		return domain.DeliveryRecord{}, fmt.Errorf("%w: number is required", domain.ErrValidation)
	}
	if rec.TripDate.IsZero() {
		return domain.DeliveryRecord{}, fmt.Errorf("%w: trip_date is required", domain.ErrValidation)
	}

	r := s.store.Repos()

	if _, err := r.Trips.GetByID(ctx, rec.TripID); err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("service.DeliveryService.Attach: %w", err)
	}

	result, err := r.Deliveries.Create(ctx, rec)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("service.DeliveryService.Attach: %w", err)
	}
	return result, nil
}

// GetByTrip returns the trip's delivery record.
func (s *DeliveryService) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error) {
	result, err := s.store.Repos().Deliveries.GetByTrip(ctx, tripID)
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("service.DeliveryService.GetByTrip: %w", err)
	}
	return result, nil
}

// ListByCarrier returns the delivery records for a carrier's trips.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DeliveryService) ListByCarrier(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error) {
	recs, err := s.store.Repos().Deliveries.ListByCarrier(ctx, carrierID)
	if err != nil {
		return nil, fmt.Errorf("service.DeliveryService.ListByCarrier: %w", err)
	}
	if recs == nil {
		return []domain.DeliveryRecord{}, nil
	}
	return recs, nil
}
