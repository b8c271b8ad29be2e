package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fletesapp/backend/internal/domain"
)

// errorBody is the JSON envelope for every non-2xx response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError maps a service error onto an HTTP status and a stable machine
// code. 404 means the resource does not exist, 409 means the trip's current
// state forbids the operation, 422 means the request itself cannot be
// honored. Anything unmapped is a 500 and the detail stays in the log.
func writeError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			writeJSON(w, m.status, errorBody{Code: m.code, Message: cleanMessage(err)})
			return
		}
	}
	slog.Error("unhandled error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Code:    "internal",
		Message: "internal server error",
	})
}

var errorMappings = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{domain.ErrInvalidState, http.StatusConflict, "invalid_state"},
	{domain.ErrAlreadyPaid, http.StatusConflict, "already_paid"},
	{domain.ErrNothingToPay, http.StatusConflict, "nothing_to_pay"},
	{domain.ErrPreconditionFailed, http.StatusUnprocessableEntity, "precondition_failed"},
	{domain.ErrScopeMismatch, http.StatusUnprocessableEntity, "scope_mismatch"},
	{domain.ErrTariffInactive, http.StatusUnprocessableEntity, "tariff_inactive"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
}

// cleanMessage strips the internal call-path prefixes (service.X.Y:,
// repo.X.Y:) that error wrapping accumulates, leaving the human-readable
// tail for the response body.
func cleanMessage(err error) string {
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			return msg
		}
		head := msg[:i]
		if strings.HasPrefix(head, "service.") || strings.HasPrefix(head, "repo.") {
			msg = msg[i+2:]
			continue
		}
		return msg
	}
}

// badRequest reports a malformed request (unparseable body or parameter)
// without involving the domain error taxonomy.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Code: "bad_request", Message: msg})
}
