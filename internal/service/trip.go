package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/repo"
)

// TripService owns the trip lifecycle: creation, listing, client assignment,
// and the state machine. Every mutation runs inside one transaction with the
// trip row locked, so two concurrent callers racing the same trip cannot both
// succeed; the loser observes the post-state and gets the guard error.
type TripService struct {
	store Store
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(store Store) *TripService {
	return &TripService{store: store}
}

// Create validates and persists a new trip. Trips always start pending.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.Origin) == "" {
		return domain.Trip{}, fmt.Errorf("%w: origin is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Destination) == "" {
		return domain.Trip{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.UnitType) == "" {
		return domain.Trip{}, fmt.Errorf("%w: unit_type is required", domain.ErrValidation)
	}
	if trip.CarrierID == uuid.Nil {
		return domain.Trip{}, fmt.Errorf("%w: carrier_id is required", domain.ErrValidation)
	}

	r := s.store.Repos()

	if _, err := r.Carriers.GetByID(ctx, trip.CarrierID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: carrier: %w", err)
	}
	if trip.ClientID != nil {
		client, err := r.Clients.GetByID(ctx, *trip.ClientID)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: client: %w", err)
		}
		if !client.Active {
			return domain.Trip{}, fmt.Errorf("%w: client is inactive", domain.ErrValidation)
		}
	}

	result, err := r.Trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.store.Repos().Trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns trips matching the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	trips, err := s.store.Repos().Trips.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// ChangeState moves a trip along the lifecycle graph.
//
// Guards:
//   - target must be a known state (ErrValidation) and reachable from the
//     current state (ErrInvalidTransition);
//   - invoicing requires an assigned client and both frozen snapshots
//     (ErrPreconditionFailed naming the missing piece);
//   - paid is never reachable here; it is reached only by registering a
//     carrier payment, so the insert and the transition commit together.
func (s *TripService) ChangeState(ctx context.Context, tripID uuid.UUID, target domain.TripState) (domain.Trip, error) {
	if !target.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: unknown state %q", domain.ErrValidation, target)
	}
	if target == domain.StatePaid {
		return domain.Trip{}, fmt.Errorf("%w: paid is reached by registering a carrier payment", domain.ErrInvalidTransition)
	}

	var out domain.Trip
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, tripID)
		if err != nil {
			return fmt.Errorf("service.TripService.ChangeState: %w", err)
		}

		if !trip.State.CanTransitionTo(target) {
			return fmt.Errorf("%w: cannot move %s trip to %s", domain.ErrInvalidTransition, trip.State, target)
		}

		if target == domain.StateInvoiced {
			if trip.ClientID == nil {
				return fmt.Errorf("%w: assign a client before invoicing", domain.ErrPreconditionFailed)
			}
			if !trip.HasSnapshots() {
				return fmt.Errorf("%w: apply a tariff before invoicing", domain.ErrPreconditionFailed)
			}
		}

		out, err = r.Trips.SetState(ctx, tripID, target)
		if err != nil {
			return fmt.Errorf("service.TripService.ChangeState: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return out, nil
}

// AssignClient sets the trip's billing counterparty. Only allowed while the
// trip is pending or approved; once invoiced the counterparty is fixed.
// Existing snapshots are kept; switching clients takes effect on billing
// only when a tariff for the new client is applied.
func (s *TripService) AssignClient(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error) {
	var out domain.Trip
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, tripID)
		if err != nil {
			return fmt.Errorf("service.TripService.AssignClient: %w", err)
		}

		if trip.State != domain.StatePending && trip.State != domain.StateApproved {
			return fmt.Errorf("%w: client can only change while pending or approved", domain.ErrInvalidState)
		}

		client, err := r.Clients.GetByID(ctx, clientID)
		if err != nil {
			return fmt.Errorf("service.TripService.AssignClient: client: %w", err)
		}
		if !client.Active {
			return fmt.Errorf("%w: client is inactive", domain.ErrValidation)
		}

		out, err = r.Trips.AssignClient(ctx, tripID, clientID)
		if err != nil {
			return fmt.Errorf("service.TripService.AssignClient: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return out, nil
}
