package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fletesapp/backend/internal/domain"
)

// ListingRepo reads the trip_listing view: trips joined with client, carrier,
// and delivery record. Reports and the export listing both run over it so
// they share one date column and one set of joined names.
type ListingRepo interface {
	// Rows returns the flat listing matching the filter, newest trip first.
	Rows(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error)

	// MonthRows returns all rows whose trip_date falls in the month window.
	MonthRows(ctx context.Context, m domain.Month) ([]domain.TripRow, error)
}

type pgListingRepo struct {
	db db
}

// NewListingRepo constructs a ListingRepo backed by the provided db connection.
func NewListingRepo(db db) ListingRepo {
	return &pgListingRepo{db: db}
}

const listingColumns = `trip_id, state, origin, destination, unit_type, trip_date,
		carrier_id, carrier_name, driver_name, client_id, client_name,
		client_amount_snapshot, carrier_amount_snapshot,
		delivery_number, document_ref, created_at, updated_at`

func (r *pgListingRepo) Rows(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error) {
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
	if f.UnitType != "" {
		where = append(where, "unit_type = @unit_type")
		args["unit_type"] = f.UnitType
	}
	if !f.From.IsZero() {
		where = append(where, "trip_date >= @from")
		args["from"] = f.From
	}
	if !f.To.IsZero() {
		where = append(where, "trip_date <= @to")
		args["to"] = f.To
	}
	if f.Search != "" {
		where = append(where, `(carrier_name ILIKE @search OR driver_name ILIKE @search
			OR destination ILIKE @search OR delivery_number ILIKE @search)`)
		args["search"] = "%" + f.Search + "%"
	}

	q := `SELECT ` + listingColumns + ` FROM trip_listing`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY trip_date DESC, created_at DESC"

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Rows: %w", err)
	}
	defer rows.Close()

	return collectRows(rows, "repo.ListingRepo.Rows")
}

func (r *pgListingRepo) MonthRows(ctx context.Context, m domain.Month) ([]domain.TripRow, error) {
	const q = `
		SELECT ` + listingColumns + `
		FROM trip_listing
		WHERE trip_date >= @from AND trip_date < @to
		ORDER BY trip_date`

	args := pgx.NamedArgs{"from": m.Start(), "to": m.NextStart()}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.MonthRows: %w", err)
	}
	defer rows.Close()

	return collectRows(rows, "repo.ListingRepo.MonthRows")
}

func collectRows(rows pgx.Rows, op string) ([]domain.TripRow, error) {
	var out []domain.TripRow
	for rows.Next() {
		row, err := scanTripRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}

func scanTripRow(s scanner) (domain.TripRow, error) {
	var (
		row                 domain.TripRow
		tripID, carrierID   pgtype.UUID
		clientID            pgtype.UUID
		state               string
		tripDate            pgtype.Date
		driver, clientName  pgtype.Text
		deliveryNum, docRef pgtype.Text
		clientAmt, carrAmt  pgtype.Numeric
	)

	err := s.Scan(&tripID, &state, &row.Origin, &row.Destination, &row.UnitType, &tripDate,
		&carrierID, &row.CarrierName, &driver, &clientID, &clientName,
		&clientAmt, &carrAmt, &deliveryNum, &docRef, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripRow{}, domain.ErrNotFound
		}
		return domain.TripRow{}, err
	}

	row.TripID = uuid.UUID(tripID.Bytes)
	row.State = domain.TripState(state)
	row.TripDate = tripDate.Time
	row.CarrierID = uuid.UUID(carrierID.Bytes)
	row.DriverName = textToString(driver)
	row.ClientID = uuidToPtr(clientID)
	row.ClientName = textToString(clientName)
	row.DeliveryNumber = textToString(deliveryNum)
	row.DocumentRef = textToString(docRef)

	if row.ClientAmountSnapshot, err = numericToDecimalPtr(clientAmt); err != nil {
		return domain.TripRow{}, fmt.Errorf("client_amount_snapshot: %w", err)
	}
	if row.CarrierAmountSnapshot, err = numericToDecimalPtr(carrAmt); err != nil {
		return domain.TripRow{}, fmt.Errorf("carrier_amount_snapshot: %w", err)
	}

	return row, nil
}
