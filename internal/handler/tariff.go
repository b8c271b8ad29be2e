package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fletesapp/backend/internal/domain"
)

type createTariffRequest struct {
	ClientID      *uuid.UUID       `json:"client_id,omitempty"`
	Destination   *string          `json:"destination,omitempty"`
	UnitType      *string          `json:"unit_type,omitempty"`
	ClientAmount  decimal.Decimal  `json:"client_amount"`
	CarrierAmount decimal.Decimal  `json:"carrier_amount"`
	SecondTripPct *decimal.Decimal `json:"second_trip_pct,omitempty"`
}

// CreateTariff handles POST /tariffs.
// Omitted scope fields mean "matches anything" on that dimension.
func (s *Server) CreateTariff(w http.ResponseWriter, r *http.Request) {
	var req createTariffRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	tariff, err := s.tariffs.Create(r.Context(), domain.Tariff{
		ClientID:      req.ClientID,
		Destination:   req.Destination,
		UnitType:      req.UnitType,
		ClientAmount:  req.ClientAmount,
		CarrierAmount: req.CarrierAmount,
		SecondTripPct: req.SecondTripPct,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tariff)
}

// ListTariffs handles GET /tariffs.
// Pass active=true to hide retired tariffs.
func (s *Server) ListTariffs(w http.ResponseWriter, r *http.Request) {
	onlyActive := false
	if v := r.URL.Query().Get("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, "active must be a boolean")
			return
		}
		onlyActive = b
	}

	tariffs, err := s.tariffs.List(r.Context(), onlyActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tariffs)
}

// TariffCandidates handles GET /tariffs/candidates.
// Returns the active tariffs matching the trip attributes in the query
// string, most specific first. The first element is what Apply would freeze.
func (s *Server) TariffCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var clientID *uuid.UUID
	if v := q.Get("client_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			badRequest(w, "invalid client_id")
			return
		}
		clientID = &id
	}

	tariffs, err := s.tariffs.Candidates(r.Context(), clientID, q.Get("destination"), q.Get("unit_type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tariffs)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetTariffActive handles PUT /tariffs/{id}/active.
// Retiring a tariff does not touch trips that already froze its amounts.
func (s *Server) SetTariffActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid tariff id")
		return
	}
	var req setActiveRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	tariff, err := s.tariffs.SetActive(r.Context(), id, req.Active)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tariff)
}
