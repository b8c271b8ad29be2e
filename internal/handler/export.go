package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fletesapp/backend/internal/domain"
)

// Export handles GET /export.
// Returns the flat trip listing as JSON rows. Supported query parameters:
// state, client_id, unit_type, from, to (YYYY-MM-DD, inclusive), q.
func (s *Server) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f domain.RowFilter

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
	f.UnitType = q.Get("unit_type")
	f.Search = q.Get("q")

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequest(w, "from must be YYYY-MM-DD")
			return
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequest(w, "to must be YYYY-MM-DD")
			return
		}
		f.To = t
	}

	rows, err := s.export.Rows(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
