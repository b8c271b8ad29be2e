// Package handler implements the HTTP surface of the freight billing API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, tariff.go, report.go, ...) but share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/service"
)

// The servicer interfaces are defined here, in the consumer package, so
// handler tests can inject mocks without touching the database or the
// service layer.

// TripServicer defines the trip lifecycle operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, f domain.TripFilter) ([]domain.Trip, error)
	ChangeState(ctx context.Context, tripID uuid.UUID, target domain.TripState) (domain.Trip, error)
	AssignClient(ctx context.Context, tripID, clientID uuid.UUID) (domain.Trip, error)
}

// TariffServicer defines the tariff catalog and resolver operations.
type TariffServicer interface {
	Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error)
	List(ctx context.Context, onlyActive bool) ([]domain.Tariff, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (domain.Tariff, error)
	Candidates(ctx context.Context, clientID *uuid.UUID, destination, unitType string) ([]domain.Tariff, error)
	Apply(ctx context.Context, tripID, tariffID uuid.UUID) (domain.Trip, error)
}

// PaymentServicer defines the payment ledger operations.
type PaymentServicer interface {
	Register(ctx context.Context, tripID uuid.UUID, in service.PaymentInput) (domain.Payment, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Payment, error)
}

// ReportServicer defines the read-side reporting operations.
type ReportServicer interface {
	MonthlyClientReport(ctx context.Context, m domain.Month) ([]domain.ClientAggregate, error)
	MonthlyCarrierReport(ctx context.Context, m domain.Month) ([]domain.CarrierAggregate, error)
	DailySeries(ctx context.Context, m domain.Month) ([]domain.DayBucket, error)
	MonthProjection(ctx context.Context, m domain.Month) (domain.Projection, error)
}

// CatalogServicer defines the client/carrier reference data operations.
type CatalogServicer interface {
	CreateClient(ctx context.Context, client domain.Client) (domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	SetClientActive(ctx context.Context, id uuid.UUID, active bool) (domain.Client, error)
	CreateCarrier(ctx context.Context, carrier domain.Carrier) (domain.Carrier, error)
	ListCarriers(ctx context.Context) ([]domain.Carrier, error)
}

// DeliveryServicer defines the delivery record operations.
type DeliveryServicer interface {
	Attach(ctx context.Context, rec domain.DeliveryRecord) (domain.DeliveryRecord, error)
	GetByTrip(ctx context.Context, tripID uuid.UUID) (domain.DeliveryRecord, error)
	ListByCarrier(ctx context.Context, carrierID uuid.UUID) ([]domain.DeliveryRecord, error)
}

// ExportServicer defines the flat listing used for exports.
type ExportServicer interface {
	Rows(ctx context.Context, f domain.RowFilter) ([]domain.TripRow, error)
}

// Deps bundles the service dependencies of the Server.
type Deps struct {
	Trips      TripServicer
	Tariffs    TariffServicer
	Payments   PaymentServicer
	Reports    ReportServicer
	Catalog    CatalogServicer
	Deliveries DeliveryServicer
	Export     ExportServicer
}

// Server holds the handlers for all API endpoints.
type Server struct {
	trips      TripServicer
	tariffs    TariffServicer
	payments   PaymentServicer
	reports    ReportServicer
	catalog    CatalogServicer
	deliveries DeliveryServicer
	export     ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:      d.Trips,
		tariffs:    d.Tariffs,
		payments:   d.Payments,
		reports:    d.Reports,
		catalog:    d.Catalog,
		deliveries: d.Deliveries,
		export:     d.Export,
	}
}

// Routes wires every endpoint onto a fresh chi router. Middleware is the
// caller's concern; main mounts this under its middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Post("/state", s.ChangeTripState)
			r.Post("/client", s.AssignTripClient)
			r.Post("/tariff", s.ApplyTariff)
			r.Post("/payments", s.RegisterPayment)
			r.Get("/payments", s.ListTripPayments)
			r.Post("/delivery", s.AttachDelivery)
			r.Get("/delivery", s.GetTripDelivery)
		})
	})

	r.Route("/tariffs", func(r chi.Router) {
		r.Post("/", s.CreateTariff)
		r.Get("/", s.ListTariffs)
		r.Get("/candidates", s.TariffCandidates)
		r.Put("/{id}/active", s.SetTariffActive)
	})

	r.Route("/clients", func(r chi.Router) {
		r.Post("/", s.CreateClient)
		r.Get("/", s.ListClients)
		r.Put("/{id}/active", s.SetClientActive)
	})

	r.Route("/carriers", func(r chi.Router) {
		r.Post("/", s.CreateCarrier)
		r.Get("/", s.ListCarriers)
		r.Get("/{id}/deliveries", s.ListCarrierDeliveries)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Get("/clients", s.ClientReport)
		r.Get("/carriers", s.CarrierReport)
		r.Get("/daily", s.DailyReport)
		r.Get("/projection", s.ProjectionReport)
	})

	r.Get("/export", s.Export)

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
