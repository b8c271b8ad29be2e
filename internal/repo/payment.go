package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fletesapp/backend/internal/domain"
)

// PaymentRepo defines the persistence operations for the payment ledger.
// The ledger is append-only: rows are inserted, never updated or deleted.
// Corrections would be new rows, not edits; history stays auditable.
type PaymentRepo interface {
	// Create appends one payment row and returns the persisted record.
	Create(ctx context.Context, p domain.Payment) (domain.Payment, error)

	// ListByTrip returns the trip's payments, oldest first.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error)
}

type pgPaymentRepo struct {
	db db
}

// NewPaymentRepo constructs a PaymentRepo backed by the provided db connection.
func NewPaymentRepo(db db) PaymentRepo {
	return &pgPaymentRepo{db: db}
}

const paymentColumns = `id, trip_id, amount, method, reference, paid_at, created_at`

func (r *pgPaymentRepo) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	const q = `
		INSERT INTO payments (trip_id, amount, method, reference, paid_at)
		VALUES (@trip_id, @amount, @method, @reference, @paid_at)
		RETURNING ` + paymentColumns

	args := pgx.NamedArgs{
		"trip_id":   p.TripID,
		"amount":    p.Amount.String(),
		"method":    p.Method,
		"reference": nullableString(p.Reference),
		"paid_at":   p.PaidAt,
	}

	result, err := scanPayment(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Payment{}, fmt.Errorf("repo.PaymentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgPaymentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE trip_id = @trip_id ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.PaymentRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PaymentRepo.ListByTrip: scan: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PaymentRepo.ListByTrip: rows: %w", err)
	}

	return payments, nil
}

func scanPayment(s scanner) (domain.Payment, error) {
	var (
		p          domain.Payment
		id, tripID pgtype.UUID
		amount     pgtype.Numeric
		reference  pgtype.Text
	)

	err := s.Scan(&id, &tripID, &amount, &p.Method, &reference, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Payment{}, domain.ErrNotFound
		}
		return domain.Payment{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.Reference = textToString(reference)

	if p.Amount, err = numericToDecimal(amount); err != nil {
		return domain.Payment{}, fmt.Errorf("amount: %w", err)
	}

	return p, nil
}
