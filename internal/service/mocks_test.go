package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/repo"
	"github.com/fletesapp/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces. Each method is a
// function field; set only the ones your test needs; an unset field panics
// with a nil dereference, which immediately points at the untested call.
// This is idiomatic Go: no mock generation library required for simple cases.

// fakeStore satisfies service.Store over a bundle of mocks. WithTx simply
// invokes fn with the same bundle; transaction semantics are the real
// Store's concern and are covered by the repo integration tests.
type fakeStore struct {
	repos repo.Repos
}

func (s *fakeStore) Repos() repo.Repos { return s.repos }

func (s *fakeStore) WithTx(_ context.Context, fn func(repo.Repos) error) error {
	return fn(s.repos)
}

var _ service.Store = (*fakeStore)(nil)

// ---- TripRepo --------------------------------------------------------------

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getForUpdate func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list         func(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	assignClient func(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error)
	applyTariff  func(ctx context.Context, tripID, tariffID uuid.UUID, clientAmount, carrierAmount decimal.Decimal) (domain.Trip, error)
	setState     func(ctx context.Context, tripID uuid.UUID, state domain.TripState) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getForUpdate(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, f)
}
func (m *mockTripRepo) AssignClient(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error) {
	return m.assignClient(ctx, tripID, clientID)
}
func (m *mockTripRepo) ApplyTariff(ctx context.Context, tripID, tariffID uuid.UUID, clientAmount, carrierAmount decimal.Decimal) (domain.Trip, error) {
	return m.applyTariff(ctx, tripID, tariffID, clientAmount, carrierAmount)
}
func (m *mockTripRepo) SetState(ctx context.Context, tripID uuid.UUID, state domain.TripState) (domain.Trip, error) {
	return m.setState(ctx, tripID, state)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- TariffRepo ------------------------------------------------------------

type mockTariffRepo struct {
	create     func(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Tariff, error)
	list       func(ctx context.Context, onlyActive bool) ([]domain.Tariff, error)
	candidates func(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error)
	setActive  func(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error)
}

func (m *mockTariffRepo) Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error) {
	return m.create(ctx, tariff)
}
func (m *mockTariffRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Tariff, error) {
	return m.getByID(ctx, id)
}
func (m *mockTariffRepo) List(ctx context.Context, onlyActive bool) ([]domain.Tariff, error) {
	return m.list(ctx, onlyActive)
}
func (m *mockTariffRepo) Candidates(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error) {
	return m.candidates(ctx, clientID, destination, unitType)
}
func (m *mockTariffRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error) {
	return m.setActive(ctx, id, active)
}

var _ repo.TariffRepo = (*mockTariffRepo)(nil)

// ---- ClientRepo / CarrierRepo ----------------------------------------------

type mockClientRepo struct {
	create    func(ctx context.Context, client domain.Client) (domain.Client, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Client, error)
	list      func(ctx context.Context) ([]domain.Client, error)
	setActive func(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error)
}

func (m *mockClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	return m.create(ctx, client)
}
func (m *mockClientRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return m.getByID(ctx, id)
}
func (m *mockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	return m.list(ctx)
}
func (m *mockClientRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error) {
	return m.setActive(ctx, id, active)
}

var _ repo.ClientRepo = (*mockClientRepo)(nil)

type mockCarrierRepo struct {
	create  func(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Carrier, error)
	list    func(ctx context.Context) ([]domain.Carrier, error)
}

func (m *mockCarrierRepo) Create(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error) {
	return m.create(ctx, carrier)
}
func (m *mockCarrierRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Carrier, error) {
	return m.getByID(ctx, id)
}
func (m *mockCarrierRepo) List(ctx context.Context) ([]domain.Carrier, error) {
	return m.list(ctx)
}

var _ repo.CarrierRepo = (*mockCarrierRepo)(nil)

// ---- DeliveryRepo / PaymentRepo / ListingRepo --------------------------------

type mockDeliveryRepo struct {
	create        func(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error)
	getByTrip     func(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error)
	listByCarrier func(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error)
}

func (m *mockDeliveryRepo) Create(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error) {
	return m.create(ctx, rec)
}
func (m *mockDeliveryRepo) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error) {
	return m.getByTrip(ctx, tripID)
}
func (m *mockDeliveryRepo) ListByCarrier(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error) {
	return m.listByCarrier(ctx, carrierID)
}

var _ repo.DeliveryRepo = (*mockDeliveryRepo)(nil)

type mockPaymentRepo struct {
	create     func(ctx context.Context, p domain.Payment) (domain.Payment, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	return m.create(ctx, p)
}
func (m *mockPaymentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error) {
	return m.listByTrip(ctx, tripID)
}

var _ repo.PaymentRepo = (*mockPaymentRepo)(nil)

type mockListingRepo struct {
	rows      func(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error)
	monthRows func(ctx context.Context, m domain.Month) ([]domain.TripRow, error)
}

func (m *mockListingRepo) Rows(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error) {
	return m.rows(ctx, f)
}
func (m *mockListingRepo) MonthRows(ctx context.Context, mo domain.Month) ([]domain.TripRow, error) {
	return m.monthRows(ctx, mo)
}

var _ repo.ListingRepo = (*mockListingRepo)(nil)
