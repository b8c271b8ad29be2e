package handler

import (
	"net/http"
	"time"

	"github.com/fletesapp/backend/internal/domain"
)

// monthParam parses the month query parameter (YYYY-MM), defaulting to the
// current UTC month when absent.
func monthParam(r *http.Request) (domain.Month, error) {
	v := r.URL.Query().Get("month")
	if v == "" {
		return domain.MonthOf(time.Now().UTC()), nil
	}
	return domain.ParseMonth(v)
}

// ClientReport handles GET /reports/clients?month=YYYY-MM.
func (s *Server) ClientReport(w http.ResponseWriter, r *http.Request) {
	m, err := monthParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.reports.MonthlyClientReport(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// CarrierReport handles GET /reports/carriers?month=YYYY-MM.
func (s *Server) CarrierReport(w http.ResponseWriter, r *http.Request) {
	m, err := monthParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.reports.MonthlyCarrierReport(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DailyReport handles GET /reports/daily?month=YYYY-MM.
// The response always has one entry per calendar day of the month.
func (s *Server) DailyReport(w http.ResponseWriter, r *http.Request) {
	m, err := monthParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	series, err := s.reports.DailySeries(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// ProjectionReport handles GET /reports/projection?month=YYYY-MM.
func (s *Server) ProjectionReport(w http.ResponseWriter, r *http.Request) {
	m, err := monthParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := s.reports.MonthProjection(r.Context(), m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
