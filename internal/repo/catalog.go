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

// ClientRepo defines the persistence operations for Clients.
// Clients are never deleted (trips reference them forever), so the only
// mutation is the active flag.
type ClientRepo interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
	// List returns all clients ordered by name; inactive ones included so
	// historical trips still resolve their counterparty.
	List(ctx context.Context) ([]domain.Client, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error)
}

type pgClientRepo struct {
	db db
}

// NewClientRepo constructs a ClientRepo backed by the provided db connection.
func NewClientRepo(db db) ClientRepo {
	return &pgClientRepo{db: db}
}

func (r *pgClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	const q = `
		INSERT INTO clients (name)
		VALUES (@name)
		RETURNING id, name, active, created_at`

	result, err := scanClient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": client.Name}))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	const q = `SELECT id, name, active, created_at FROM clients WHERE id = @id`

	result, err := scanClient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	const q = `SELECT id, name, active, created_at FROM clients ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ClientRepo.List: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ClientRepo.List: scan: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ClientRepo.List: rows: %w", err)
	}

	return clients, nil
}

func (r *pgClientRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error) {
	const q = `
		UPDATE clients
		SET active = @active
		WHERE id = @id
		RETURNING id, name, active, created_at`

	result, err := scanClient(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "active": active}))
	if err != nil {
		return domain.Client{}, fmt.Errorf("repo.ClientRepo.SetActive: %w", err)
	}
	return result, nil
}

func scanClient(s scanner) (domain.Client, error) {
	var (
		c  domain.Client
		id pgtype.UUID
	)

	err := s.Scan(&id, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, domain.ErrNotFound
		}
		return domain.Client{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}

// CarrierRepo defines the persistence operations for carrier accounts.
type CarrierRepo interface {
	Create(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Carrier, error)
	List(ctx context.Context) ([]domain.Carrier, error)
}

type pgCarrierRepo struct {
	db db
}

// NewCarrierRepo constructs a CarrierRepo backed by the provided db connection.
func NewCarrierRepo(db db) CarrierRepo {
	return &pgCarrierRepo{db: db}
}

func (r *pgCarrierRepo) Create(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error) {
	const q = `
		INSERT INTO carriers (name, email)
		VALUES (@name, @email)
		RETURNING id, name, email, created_at`

	args := pgx.NamedArgs{
		"name":  carrier.Name,
		"email": nullableString(carrier.Email),
	}

	result, err := scanCarrier(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Carrier{}, fmt.Errorf("repo.CarrierRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCarrierRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Carrier, error) {
	const q = `SELECT id, name, email, created_at FROM carriers WHERE id = @id`

	result, err := scanCarrier(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Carrier{}, fmt.Errorf("repo.CarrierRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCarrierRepo) List(ctx context.Context) ([]domain.Carrier, error) {
	const q = `SELECT id, name, email, created_at FROM carriers ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CarrierRepo.List: %w", err)
	}
	defer rows.Close()

	var carriers []domain.Carrier
	for rows.Next() {
		c, err := scanCarrier(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CarrierRepo.List: scan: %w", err)
		}
		carriers = append(carriers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CarrierRepo.List: rows: %w", err)
	}

	return carriers, nil
}

func scanCarrier(s scanner) (domain.Carrier, error) {
	var (
		c     domain.Carrier
		id    pgtype.UUID
		email pgtype.Text
	)

	err := s.Scan(&id, &c.Name, &email, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Carrier{}, domain.ErrNotFound
		}
		return domain.Carrier{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.Email = textToString(email)
	return c, nil
}
