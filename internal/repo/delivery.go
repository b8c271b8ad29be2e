package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fletesapp/backend/internal/domain"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// DeliveryRepo defines the persistence operations for delivery records.
// The trip_id column carries a unique constraint; one record per trip.
type DeliveryRepo interface {
	// Create inserts the trip's delivery record. A second insert for the same
	// trip fails with domain.ErrValidation (unique constraint).
	Create(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error)

	// GetByTrip returns the trip's delivery record.
	// Returns domain.ErrNotFound if the trip has none.
	GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error)

	// ListByCarrier returns all delivery records for trips owned by the given
	// carrier account, newest trip date first.
	ListByCarrier(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error)
}

type pgDeliveryRepo struct {
	db db
}

// NewDeliveryRepo constructs a DeliveryRepo backed by the provided db connection.
func NewDeliveryRepo(db db) DeliveryRepo {
	return &pgDeliveryRepo{db: db}
}

const deliveryColumns = `id, trip_id, number, trip_date, document_ref, created_at`

func (r *pgDeliveryRepo) Create(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error) {
	const q = `
		INSERT INTO delivery_records (trip_id, number, trip_date, document_ref)
		VALUES (@trip_id, @number, @trip_date, @document_ref)
		RETURNING ` + deliveryColumns

	args := pgx.NamedArgs{
		"trip_id":      rec.TripID,
		"number":       rec.Number,
		"trip_date":    rec.TripDate,
		"document_ref": nullableString(rec.DocumentRef),
	}

	result, err := scanDelivery(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.DeliveryRecord{}, fmt.Errorf("repo.DeliveryRepo.Create: %w: trip already has a delivery record", domain.ErrValidation)
		}
		return domain.DeliveryRecord{}, fmt.Errorf("repo.DeliveryRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDeliveryRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error) {
	const q = `SELECT ` + deliveryColumns + ` FROM delivery_records WHERE trip_id = @trip_id`

	result, err := scanDelivery(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.DeliveryRecord{}, fmt.Errorf("repo.DeliveryRepo.GetByTrip: %w", err)
	}
	return result, nil
}

func (r *pgDeliveryRepo) ListByCarrier(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error) {
	const q = `
		SELECT d.id, d.trip_id, d.number, d.trip_date, d.document_ref, d.created_at
		FROM delivery_records d
		JOIN trips t ON t.id = d.trip_id
		WHERE t.carrier_id = @carrier_id
		ORDER BY d.trip_date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"carrier_id": carrierID})
	if err != nil {
		return nil, fmt.Errorf("repo.DeliveryRepo.ListByCarrier: %w", err)
	}
	defer rows.Close()

	var recs []domain.DeliveryRecord
	for rows.Next() {
		rec, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DeliveryRepo.ListByCarrier: scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DeliveryRepo.ListByCarrier: rows: %w", err)
	}

	return recs, nil
}

func scanDelivery(s scanner) (domain.DeliveryRecord, error) {
	var (
		rec         domain.DeliveryRecord
		id, tripID  pgtype.UUID
		tripDate    pgtype.Date
		documentRef pgtype.Text
	)

	err := s.Scan(&id, &tripID, &rec.Number, &tripDate, &documentRef, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DeliveryRecord{}, domain.ErrNotFound
		}
		return domain.DeliveryRecord{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	rec.TripID = uuid.UUID(tripID.Bytes)
	rec.TripDate = tripDate.Time
	rec.DocumentRef = textToString(documentRef)
	return rec, nil
}
