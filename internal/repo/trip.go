package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/fletesapp/backend/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// GetForUpdate, AssignClient, ApplyTariff, and SetState are designed to run
// inside one Store.WithTx: GetForUpdate takes a row lock so guard evaluation
// and the subsequent write form a single atomic unit per trip.
type TripRepo interface {
	// Create inserts a new trip in pending state and returns the persisted
	// record (with DB-generated id and timestamps populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// GetForUpdate retrieves a trip with SELECT ... FOR UPDATE, serializing
	// concurrent mutations of the same trip. Only meaningful inside a
	// transaction; callers go through Store.WithTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns trips matching the filter, newest first.
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)

	// AssignClient sets the trip's client and bumps updated_at.
	AssignClient(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error)

	// ApplyTariff writes the tariff reference and the frozen snapshot pair in
	// one statement; a full overwrite of any prior snapshot.
	ApplyTariff(ctx context.Context, tripID, tariffID uuid.UUID, clientAmount, carrierAmount decimal.Decimal) (domain.Trip, error)

	// SetState writes the new state and bumps updated_at.
	SetState(ctx context.Context, tripID uuid.UUID, state domain.TripState) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns is the canonical select list, shared by every query so scanTrip
// stays in sync with a single definition.
const tripColumns = `id, state, origin, destination, unit_type, carrier_id, driver_name,
		client_id, tariff_id, client_amount_snapshot, carrier_amount_snapshot,
		created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (origin, destination, unit_type, carrier_id, driver_name, client_id)
		VALUES (@origin, @destination, @unit_type, @carrier_id, @driver_name, @client_id)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"origin":      trip.Origin,
		"destination": trip.Destination,
		"unit_type":   trip.UnitType,
		"carrier_id":  trip.CarrierID,
		"driver_name": nullableString(trip.DriverName),
		"client_id":   uuidArg(trip.ClientID),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id FOR UPDATE`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetForUpdate: %w", err)
	}
	return result, nil
}

// List builds the WHERE clause from the filter's set fields only.
func (r *pgTripRepo) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	var (
		where []string
		args  = pgx.NamedArgs{}
	)
	if f.State != "" {
		where = append(where, "state = @state")
		args["state"] = string(f.State)
	}
	if f.ClientID != nil {
		where = append(where, "client_id = @client_id")
		args["client_id"] = *f.ClientID
	}
	if f.CarrierID != nil {
		where = append(where, "carrier_id = @carrier_id")
		args["carrier_id"] = *f.CarrierID
	}
	if f.UnitType != "" {
		where = append(where, "unit_type = @unit_type")
		args["unit_type"] = f.UnitType
	}
	if f.Search != "" {
		where = append(where, "(origin ILIKE @search OR destination ILIKE @search OR driver_name ILIKE @search)")
		args["search"] = "%" + f.Search + "%"
	}

	q := `SELECT ` + tripColumns + ` FROM trips`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, nil
}

func (r *pgTripRepo) AssignClient(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET client_id  = @client_id,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{"id": tripID, "client_id": clientID}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.AssignClient: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) ApplyTariff(ctx context.Context, tripID, tariffID uuid.UUID, clientAmount, carrierAmount decimal.Decimal) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET tariff_id               = @tariff_id,
		    client_amount_snapshot  = @client_amount,
		    carrier_amount_snapshot = @carrier_amount,
		    updated_at              = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":             tripID,
		"tariff_id":      tariffID,
		"client_amount":  clientAmount.String(),
		"carrier_amount": carrierAmount.String(),
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.ApplyTariff: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) SetState(ctx context.Context, tripID uuid.UUID, state domain.TripState) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET state      = @state,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{"id": tripID, "state": string(state)}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.SetState: %w", err)
	}
	return result, nil
}

// nullableString maps "" to NULL for optional text columns.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, nullable text, and numeric conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t                    domain.Trip
		id, carrierID        pgtype.UUID
		clientID, tariffID   pgtype.UUID
		state                string
		driver               pgtype.Text
		clientAmt, driverAmt pgtype.Numeric
	)

	err := s.Scan(&id, &state, &t.Origin, &t.Destination, &t.UnitType, &carrierID, &driver,
		&clientID, &tariffID, &clientAmt, &driverAmt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.State = domain.TripState(state)
	t.CarrierID = uuid.UUID(carrierID.Bytes)
	t.DriverName = textToString(driver)
	t.ClientID = uuidToPtr(clientID)
	t.TariffID = uuidToPtr(tariffID)

	if t.ClientAmountSnapshot, err = numericToDecimalPtr(clientAmt); err != nil {
		return domain.Trip{}, fmt.Errorf("client_amount_snapshot: %w", err)
	}
	if t.CarrierAmountSnapshot, err = numericToDecimalPtr(driverAmt); err != nil {
		return domain.Trip{}, fmt.Errorf("carrier_amount_snapshot: %w", err)
	}

	return t, nil
}
