package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/service"
)

// pathID parses the {id} route parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// decode unmarshals the request body into dst, rejecting unknown fields so
// typos in field names fail loudly instead of being silently dropped.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type createTripRequest struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	UnitType    string     `json:"unit_type"`
	CarrierID   uuid.UUID  `json:"carrier_id"`
	DriverName  string     `json:"driver_name"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
}

// CreateTrip handles POST /trips.
// New trips always start in the pending state.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Create(r.Context(), domain.Trip{
		Origin:      req.Origin,
		Destination: req.Destination,
		UnitType:    req.UnitType,
		CarrierID:   req.CarrierID,
		DriverName:  req.DriverName,
		ClientID:    req.ClientID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /trips.
// Supported query parameters: state, client_id, carrier_id, unit_type, q.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f domain.TripFilter

	if v := q.Get("state"); v != "" {
		state := domain.TripState(v)
		if !state.Valid() {
			badRequest(w, "unknown state "+v)
			return
		}
		f.State = state
	}
	if v := q.Get("client_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			badRequest(w, "invalid client_id")
			return
		}
		f.ClientID = &id
	}
	if v := q.Get("carrier_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			badRequest(w, "invalid carrier_id")
			return
		}
		f.CarrierID = &id
	}
	f.UnitType = q.Get("unit_type")
	f.Search = q.Get("q")

	trips, err := s.trips.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type changeStateRequest struct {
	State domain.TripState `json:"state"`
}

// ChangeTripState handles POST /trips/{id}/state.
// Moving into paid is rejected here; that transition only happens through
// the payment endpoint.
func (s *Server) ChangeTripState(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req changeStateRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.ChangeState(r.Context(), id, req.State)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type assignClientRequest struct {
	ClientID uuid.UUID `json:"client_id"`
}

// AssignTripClient handles POST /trips/{id}/client.
func (s *Server) AssignTripClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req assignClientRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.AssignClient(r.Context(), id, req.ClientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type applyTariffRequest struct {
	TariffID uuid.UUID `json:"tariff_id"`
}

// ApplyTariff handles POST /trips/{id}/tariff.
// Applying a tariff freezes both amount snapshots on the trip.
func (s *Server) ApplyTariff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req applyTariffRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip, err := s.tariffs.Apply(r.Context(), id, req.TariffID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

type registerPaymentRequest struct {
	Method    string     `json:"method,omitempty"`
	Reference string     `json:"reference,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
}

// RegisterPayment handles POST /trips/{id}/payments.
// The payment amount is never taken from the request; it is always the
// trip's frozen carrier snapshot.
func (s *Server) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req registerPaymentRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	in := service.PaymentInput{Method: req.Method, Reference: req.Reference}
	if req.PaidAt != nil {
		in.PaidAt = *req.PaidAt
	}

	payment, err := s.payments.Register(r.Context(), id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// ListTripPayments handles GET /trips/{id}/payments.
func (s *Server) ListTripPayments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	payments, err := s.payments.ListByTrip(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

type attachDeliveryRequest struct {
	Number      string `json:"number"`
	TripDate    string `json:"trip_date"`
	DocumentRef string `json:"document_ref,omitempty"`
}

// AttachDelivery handles POST /trips/{id}/delivery.
// trip_date is a calendar date (YYYY-MM-DD), not a timestamp.
func (s *Server) AttachDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}
	var req attachDeliveryRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	var tripDate time.Time
	if req.TripDate != "" {
		var err error
		tripDate, err = time.Parse("2006-01-02", req.TripDate)
		if err != nil {
			badRequest(w, "trip_date must be YYYY-MM-DD")
			return
		}
	}

	rec, err := s.deliveries.Attach(r.Context(), domain.DeliveryRecord{
		TripID:      id,
		Number:      req.Number,
		TripDate:    tripDate,
		DocumentRef: req.DocumentRef,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// GetTripDelivery handles GET /trips/{id}/delivery.
func (s *Server) GetTripDelivery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid trip id")
		return
	}

	rec, err := s.deliveries.GetByTrip(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
