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

// TariffRepo defines the persistence operations for Tariffs.
// Tariff rows are append-and-deactivate: amounts and scope are never updated
// in place, only the active flag moves.
type TariffRepo interface {
	// Create inserts a new tariff (active by default) and returns it.
	Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error)

	// GetByID retrieves a single tariff by primary key.
	// Returns domain.ErrNotFound if no tariff with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tariff, error)

	// List returns all tariffs, optionally restricted to active ones,
	// newest first.
	List(ctx context.Context, onlyActive bool) ([]domain.Tariff, error)

	// Candidates returns the active tariffs whose scope matches the given
	// trip attributes: client-scoped rows for that client plus general rows,
	// each with destination/unit scope either null or equal to the trip's.
	// Ordering by specificity is the resolver's job, not SQL's.
	Candidates(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error)

	// SetActive flips the active flag and returns the updated tariff.
	SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error)
}

type pgTariffRepo struct {
	db db
}

// NewTariffRepo constructs a TariffRepo backed by the provided db connection.
func NewTariffRepo(db db) TariffRepo {
	return &pgTariffRepo{db: db}
}

const tariffColumns = `id, client_id, destination, unit_type, client_amount, carrier_amount,
		second_trip_pct, active, created_at`

func (r *pgTariffRepo) Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error) {
	const q = `
		INSERT INTO tariffs (client_id, destination, unit_type, client_amount, carrier_amount, second_trip_pct)
		VALUES (@client_id, @destination, @unit_type, @client_amount, @carrier_amount, @second_trip_pct)
		RETURNING ` + tariffColumns

	args := pgx.NamedArgs{
		"client_id":       uuidArg(tariff.ClientID),
		"destination":     strArg(tariff.Destination),
		"unit_type":       strArg(tariff.UnitType),
		"client_amount":   tariff.ClientAmount.String(),
		"carrier_amount":  tariff.CarrierAmount.String(),
		"second_trip_pct": decimalArg(tariff.SecondTripPct),
	}

	result, err := scanTariff(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Tariff{}, fmt.Errorf("repo.TariffRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTariffRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tariff, error) {
	const q = `SELECT ` + tariffColumns + ` FROM tariffs WHERE id = @id`

	result, err := scanTariff(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Tariff{}, fmt.Errorf("repo.TariffRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTariffRepo) List(ctx context.Context, onlyActive bool) ([]domain.Tariff, error) {
	q := `SELECT ` + tariffColumns + ` FROM tariffs`
	if onlyActive {
		q += ` WHERE active`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TariffRepo.List: %w", err)
	}
	defer rows.Close()

	return collectTariffs(rows, "repo.TariffRepo.List")
}

func (r *pgTariffRepo) Candidates(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error) {
	const q = `
		SELECT ` + tariffColumns + `
		FROM tariffs
		WHERE active
		  AND (client_id IS NULL OR client_id = @client_id)
		  AND (destination IS NULL OR destination = @destination)
		  AND (unit_type IS NULL OR unit_type = @unit_type)`

	args := pgx.NamedArgs{
		"client_id":   uuidArg(clientID),
		"destination": destination,
		"unit_type":   unitType,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TariffRepo.Candidates: %w", err)
	}
	defer rows.Close()

	return collectTariffs(rows, "repo.TariffRepo.Candidates")
}

func (r *pgTariffRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error) {
	const q = `
		UPDATE tariffs
		SET active = @active
		WHERE id = @id
		RETURNING ` + tariffColumns

	result, err := scanTariff(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "active": active}))
	if err != nil {
		return domain.Tariff{}, fmt.Errorf("repo.TariffRepo.SetActive: %w", err)
	}
	return result, nil
}

func collectTariffs(rows pgx.Rows, op string) ([]domain.Tariff, error) {
	var tariffs []domain.Tariff
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		tariffs = append(tariffs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return tariffs, nil
}

// scanTariff maps a single database row into a domain.Tariff.
func scanTariff(s scanner) (domain.Tariff, error) {
	var (
		t                  domain.Tariff
		id, clientID       pgtype.UUID
		destination, unit  pgtype.Text
		clientAmt, carrAmt pgtype.Numeric
		secondPct          pgtype.Numeric
	)

	err := s.Scan(&id, &clientID, &destination, &unit, &clientAmt, &carrAmt,
		&secondPct, &t.Active, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tariff{}, domain.ErrNotFound
		}
		return domain.Tariff{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.ClientID = uuidToPtr(clientID)
	t.Destination = textToPtr(destination)
	t.UnitType = textToPtr(unit)

	if t.ClientAmount, err = numericToDecimal(clientAmt); err != nil {
		return domain.Tariff{}, fmt.Errorf("client_amount: %w", err)
	}
	if t.CarrierAmount, err = numericToDecimal(carrAmt); err != nil {
		return domain.Tariff{}, fmt.Errorf("carrier_amount: %w", err)
	}
	if t.SecondTripPct, err = numericToDecimalPtr(secondPct); err != nil {
		return domain.Tariff{}, fmt.Errorf("second_trip_pct: %w", err)
	}

	return t, nil
}
