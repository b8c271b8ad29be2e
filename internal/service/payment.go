package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/repo"
)

// PaymentInput carries the optional details of a carrier payout. The amount
// is deliberately absent: the ledger always pays the trip's frozen carrier
// snapshot.
type PaymentInput struct {
	Method    string
	Reference string
	PaidAt    time.Time
}

// PaymentService is the only path that settles a trip. Inserting the payment
// row and moving the trip to paid happen in one transaction; a payment
// without the transition (or the reverse) can never be observed.
type PaymentService struct {
	store Store
}

// NewPaymentService constructs a PaymentService backed by the provided store.
func NewPaymentService(store Store) *PaymentService {
	return &PaymentService{store: store}
}

// Register records the carrier payout for an invoiced trip and transitions it
// to paid.
//
// Guards, evaluated under the trip's row lock:
//   - an already-paid trip fails with ErrAlreadyPaid and inserts nothing;
//     re-invocation is an explicit error, not a silent success;
//   - any other non-invoiced state fails with ErrInvalidState;
//   - a missing or zero carrier snapshot fails with ErrNothingToPay.
func (s *PaymentService) Register(ctx context.Context, tripID uuid.UUID, in PaymentInput) (domain.Payment, error) {
	method := in.Method
	if method == "" {
		method = "manual"
	}
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	var out domain.Payment
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, tripID)
		if err != nil {
			return fmt.Errorf("service.PaymentService.Register: %w", err)
		}

		if trip.State == domain.StatePaid {
			return fmt.Errorf("%w: trip %s is already settled", domain.ErrAlreadyPaid, tripID)
		}
		if trip.State != domain.StateInvoiced {
			return fmt.Errorf("%w: trip must be invoiced before payment, is %s", domain.ErrInvalidState, trip.State)
		}
		if trip.CarrierAmountSnapshot == nil || !trip.CarrierAmountSnapshot.IsPositive() {
			return fmt.Errorf("%w: trip has no frozen carrier amount", domain.ErrNothingToPay)
		}

		out, err = r.Payments.Create(ctx, domain.Payment{
			TripID:    tripID,
			Amount:    *trip.CarrierAmountSnapshot,
			Method:    method,
			Reference: in.Reference,
			PaidAt:    paidAt,
		})
		if err != nil {
			return fmt.Errorf("service.PaymentService.Register: %w", err)
		}

		if _, err := r.Trips.SetState(ctx, tripID, domain.StatePaid); err != nil {
			return fmt.Errorf("service.PaymentService.Register: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Payment{}, err
	}
	return out, nil
}

// ListByTrip returns the trip's payment history, oldest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PaymentService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error) {
	r := s.store.Repos()

	if _, err := r.Trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.PaymentService.ListByTrip: %w", err)
	}

	payments, err := r.Payments.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PaymentService.ListByTrip: %w", err)
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}
