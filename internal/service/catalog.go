package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
)

// CatalogService manages the reference data: clients and carrier accounts.
// Clients referenced by trips are immutable apart from their active flag.
type CatalogService struct {
	store Store
}

// NewCatalogService constructs a CatalogService backed by the provided store.
func NewCatalogService(store Store) *CatalogService {
	return &CatalogService{store: store}
}

// CreateClient validates and persists a new billing client.
func (s *CatalogService) CreateClient(ctx context.Context, client domain.Client) (domain.Client, error) {
	if strings.TrimSpace(client.Name) == "" {
		return domain.Client{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	result, err := s.store.Repos().Clients.Create(ctx, client)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.CatalogService.CreateClient: %w", err)
	}
	return result, nil
}

// ListClients returns all clients, inactive ones included.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CatalogService) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.store.Repos().Clients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListClients: %w", err)
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

// SetClientActive soft-deletes (or restores) a client. The row itself stays:
// trips keep referencing it and reports keep resolving its name.
func (s *CatalogService) SetClientActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error) {
	result, err := s.store.Repos().Clients.SetActive(ctx, id, active)
	if err != nil {
		return domain.Client{}, fmt.Errorf("service.CatalogService.SetClientActive: %w", err)
	}
	return result, nil
}

// CreateCarrier validates and persists a new carrier account.
func (s *CatalogService) CreateCarrier(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error) {
	if strings.TrimSpace(carrier.Name) == "" {
		return domain.Carrier{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	result, err := s.store.Repos().Carriers.Create(ctx, carrier)
	if err != nil {
		return domain.Carrier{}, fmt.Errorf("service.CatalogService.CreateCarrier: %w", err)
	}
	return result, nil
}

// ListCarriers returns all carrier accounts.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CatalogService) ListCarriers(ctx context.Context) ([]domain.Carrier, error) {
	carriers, err := s.store.Repos().Carriers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ListCarriers: %w", err)
	}
	if carriers == nil {
		return []domain.Carrier{}, nil
	}
	return carriers, nil
}
