package handler

import (
	"net/http"

	"github.com/fletesapp/backend/internal/domain"
)

type createClientRequest struct {
	Name string `json:"name"`
}

// CreateClient handles POST /clients.
func (s *Server) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	client, err := s.catalog.CreateClient(r.Context(), domain.Client{Name: req.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

// ListClients handles GET /clients.
func (s *Server) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.catalog.ListClients(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// SetClientActive handles PUT /clients/{id}/active.
// Deactivation is a soft delete: existing trips keep the reference.
func (s *Server) SetClientActive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid client id")
		return
	}
	var req setActiveRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	client, err := s.catalog.SetClientActive(r.Context(), id, req.Active)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

type createCarrierRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CreateCarrier handles POST /carriers.
func (s *Server) CreateCarrier(w http.ResponseWriter, r *http.Request) {
	var req createCarrierRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	carrier, err := s.catalog.CreateCarrier(r.Context(), domain.Carrier{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, carrier)
}

// ListCarriers handles GET /carriers.
func (s *Server) ListCarriers(w http.ResponseWriter, r *http.Request) {
	carriers, err := s.catalog.ListCarriers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carriers)
}

// ListCarrierDeliveries handles GET /carriers/{id}/deliveries.
func (s *Server) ListCarrierDeliveries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "invalid carrier id")
		return
	}

	recs, err := s.deliveries.ListByCarrier(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
