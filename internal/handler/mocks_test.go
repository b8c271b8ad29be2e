package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/handler"
	"github.com/fletesapp/backend/internal/service"
)

// Test doubles for the servicer interfaces. Each method is a function field;
// set only the ones your test needs.

type mockTrips struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list         func(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	changeState  func(ctx context.Context, tripID uuid.UUID, target domain.TripState) (domain.Trip, error)
	assignClient func(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error)
}

func (m *mockTrips) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTrips) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTrips) List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error) {
	return m.list(ctx, f)
}
func (m *mockTrips) ChangeState(ctx context.Context, tripID uuid.UUID, target domain.TripState) (domain.Trip, error) {
	return m.changeState(ctx, tripID, target)
}
func (m *mockTrips) AssignClient(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error) {
	return m.assignClient(ctx, tripID, clientID)
}

var _ handler.TripServicer = (*mockTrips)(nil)

type mockTariffs struct {
	create     func(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error)
	list       func(ctx context.Context, onlyActive bool) ([]domain.Tariff, error)
	setActive  func(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error)
	candidates func(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error)
	apply      func(ctx context.Context, tripID, tariffID uuid.UUID) (domain.Trip, error)
}

func (m *mockTariffs) Create(ctx context.Context, t domain.Tariff) (domain.Tariff, error) {
	return m.create(ctx, t)
}
func (m *mockTariffs) List(ctx context.Context, onlyActive bool) ([]domain.Tariff, error) {
	return m.list(ctx, onlyActive)
}
func (m *mockTariffs) SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error) {
	return m.setActive(ctx, id, active)
}
func (m *mockTariffs) Candidates(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error) {
	return m.candidates(ctx, clientID, destination, unitType)
}
func (m *mockTariffs) Apply(ctx context.Context, tripID, tariffID uuid.UUID) (domain.Trip, error) {
	return m.apply(ctx, tripID, tariffID)
}

var _ handler.TariffServicer = (*mockTariffs)(nil)

type mockPayments struct {
	register   func(ctx context.Context, tripID uuid.UUID, in service.PaymentInput) (domain.Payment, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error)
}

func (m *mockPayments) Register(ctx context.Context, tripID uuid.UUID, in service.PaymentInput) (domain.Payment, error) {
	return m.register(ctx, tripID, in)
}
func (m *mockPayments) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error) {
	return m.listByTrip(ctx, tripID)
}

var _ handler.PaymentServicer = (*mockPayments)(nil)

type mockReports struct {
	clients    func(ctx context.Context, m domain.Month) ([]domain.ClientAggregate, error)
	carriers   func(ctx context.Context, m domain.Month) ([]domain.CarrierAggregate, error)
	daily      func(ctx context.Context, m domain.Month) ([]domain.DayBucket, error)
	projection func(ctx context.Context, m domain.Month) (domain.Projection, error)
}

func (m *mockReports) MonthlyClientReport(ctx context.Context, mo domain.Month) ([]domain.ClientAggregate, error) {
	return m.clients(ctx, mo)
}
func (m *mockReports) MonthlyCarrierReport(ctx context.Context, mo domain.Month) ([]domain.CarrierAggregate, error) {
	return m.carriers(ctx, mo)
}
func (m *mockReports) DailySeries(ctx context.Context, mo domain.Month) ([]domain.DayBucket, error) {
	return m.daily(ctx, mo)
}
func (m *mockReports) MonthProjection(ctx context.Context, mo domain.Month) (domain.Projection, error) {
	return m.projection(ctx, mo)
}

var _ handler.ReportServicer = (*mockReports)(nil)

type mockCatalog struct {
	createClient    func(ctx context.Context, client domain.Client) (domain.Client, error)
	listClients     func(ctx context.Context) ([]domain.Client, error)
	setClientActive func(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error)
	createCarrier   func(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error)
	listCarriers    func(ctx context.Context) ([]domain.Carrier, error)
}

func (m *mockCatalog) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	return m.createClient(ctx, c)
}
func (m *mockCatalog) ListClients(ctx context.Context) ([]domain.Client, error) {
	return m.listClients(ctx)
}
func (m *mockCatalog) SetClientActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error) {
	return m.setClientActive(ctx, id, active)
}
func (m *mockCatalog) CreateCarrier(ctx context.Context, c domain.Carrier) (domain.Carrier, error) {
	return m.createCarrier(ctx, c)
}
func (m *mockCatalog) ListCarriers(ctx context.Context) ([]domain.Carrier, error) {
	return m.listCarriers(ctx)
}

var _ handler.CatalogServicer = (*mockCatalog)(nil)

type mockDeliveries struct {
	attach        func(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error)
	getByTrip     func(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error)
	listByCarrier func(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error)
}

func (m *mockDeliveries) Attach(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error) {
	return m.attach(ctx, rec)
}
func (m *mockDeliveries) GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error) {
	return m.getByTrip(ctx, tripID)
}
func (m *mockDeliveries) ListByCarrier(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error) {
	return m.listByCarrier(ctx, carrierID)
}

var _ handler.DeliveryServicer = (*mockDeliveries)(nil)

type mockExport struct {
	rows func(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error)
}

func (m *mockExport) Rows(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error) {
	return m.rows(ctx, f)
}

var _ handler.ExportServicer = (*mockExport)(nil)

// ---- helpers ---------------------------------------------------------------

// newRouter wires a Server with the given deps exactly as main.go does.
func newRouter(d handler.Deps) http.Handler {
	return handler.NewServer(d).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// errResponse is the error envelope every non-2xx response carries.
type errResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeErr(t *testing.T, body *bytes.Buffer) errResponse {
	t.Helper()
	var e errResponse
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e
}
