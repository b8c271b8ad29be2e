package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/repo"
)

var hundred = decimal.NewFromInt(100)

// TariffService owns the tariff catalog and the resolver that freezes
// snapshots onto trips. Candidates are only ever offered, never silently
// applied: the caller picks the exact tariff id, and Apply validates scope
// and state before overwriting the trip's frozen amounts.
type TariffService struct {
	store Store
}

// NewTariffService constructs a TariffService backed by the provided store.
func NewTariffService(store Store) *TariffService {
	return &TariffService{store: store}
}

// Create validates and persists a new tariff.
func (s *TariffService) Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error) {
	if tariff.ClientAmount.IsNegative() {
		return domain.Tariff{}, fmt.Errorf("%w: client_amount must not be negative", domain.ErrValidation)
	}
	if tariff.CarrierAmount.IsNegative() {
		return domain.Tariff{}, fmt.Errorf("%w: carrier_amount must not be negative", domain.ErrValidation)
	}
	if p := tariff.SecondTripPct; p != nil && (p.IsNegative() || p.GreaterThan(hundred)) {
		return domain.Tariff{}, fmt.Errorf("%w: second_trip_pct must be between 0 and 100", domain.ErrValidation)
	}

	r := s.store.Repos()

	if tariff.ClientID != nil {
		if _, err := r.Clients.GetByID(ctx, *tariff.ClientID); err != nil {
			return domain.Tariff{}, fmt.Errorf("service.TariffService.Create: client: %w", err)
		}
	}

	result, err := r.Tariffs.Create(ctx, tariff)
	if err != nil {
		return domain.Tariff{}, fmt.Errorf("service.TariffService.Create: %w", err)
	}
	return result, nil
}

// List returns all tariffs, optionally only active ones.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TariffService) List(ctx context.Context, onlyActive bool) ([]domain.Tariff, error) {
	tariffs, err := s.store.Repos().Tariffs.List(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("service.TariffService.List: %w", err)
	}
	if tariffs == nil {
		return []domain.Tariff{}, nil
	}
	return tariffs, nil
}

// SetActive flips a tariff's active flag. Deactivation never touches trips
// that already froze this tariff's amounts.
func (s *TariffService) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error) {
	result, err := s.store.Repos().Tariffs.SetActive(ctx, id, active)
	if err != nil {
		return domain.Tariff{}, fmt.Errorf("service.TariffService.SetActive: %w", err)
	}
	return result, nil
}

// Candidates returns the active tariffs applicable to the given trip
// attributes, most specific first: client+destination+unit beats
// client+destination beats client-only beats the fully general fallback.
// Ties keep newest-first so a replacement tariff surfaces above the one it
// superseded.
func (s *TariffService) Candidates(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error) {
	tariffs, err := s.store.Repos().Tariffs.Candidates(ctx, clientID, destination, unitType)
	if err != nil {
		return nil, fmt.Errorf("service.TariffService.Candidates: %w", err)
	}

	sort.SliceStable(tariffs, func(i, j int) bool {
		if a, b := tariffs[i].Specificity(), tariffs[j].Specificity(); a != b {
			return a > b
		}
		return tariffs[i].CreatedAt.After(tariffs[j].CreatedAt)
	})

	if tariffs == nil {
		return []domain.Tariff{}, nil
	}
	return tariffs, nil
}

// Apply freezes the tariff's amounts onto the trip as its billing snapshot.
//
// Guards: the trip must be pending or approved (ErrInvalidState; invoiced
// and paid trips bill off their existing snapshot), the tariff must be active
// (ErrTariffInactive), and its scope must match the trip's client or be
// general (ErrScopeMismatch).
//
// The write is a full overwrite: switching tariffs discards the previous
// snapshot pair entirely. The tariff row itself is never touched.
func (s *TariffService) Apply(ctx context.Context, tripID, tariffID uuid.UUID) (domain.Trip, error) {
	var out domain.Trip
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, tripID)
		if err != nil {
			return fmt.Errorf("service.TariffService.Apply: %w", err)
		}

		if trip.State != domain.StatePending && trip.State != domain.StateApproved {
			return fmt.Errorf("%w: tariff can only be applied while pending or approved", domain.ErrInvalidState)
		}

		tariff, err := r.Tariffs.GetByID(ctx, tariffID)
		if err != nil {
			return fmt.Errorf("service.TariffService.Apply: tariff: %w", err)
		}
		if !tariff.Active {
			return fmt.Errorf("%w: tariff %s has been deactivated", domain.ErrTariffInactive, tariffID)
		}
		if !tariff.MatchesClient(trip.ClientID) {
			return fmt.Errorf("%w: tariff is scoped to a different client", domain.ErrScopeMismatch)
		}

		out, err = r.Trips.ApplyTariff(ctx, tripID, tariffID, tariff.ClientAmount, tariff.CarrierAmount)
		if err != nil {
			return fmt.Errorf("service.TariffService.Apply: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return out, nil
}
