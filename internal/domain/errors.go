package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative amount).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrInvalidTransition is returned when a state change targets a state that is
// not reachable from the trip's current state. Retrying the same request will
// fail again; the caller must pick a different target.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrPreconditionFailed is returned when a transition target is reachable but
// a guard is unmet (e.g. invoicing without a client or frozen snapshots).
// The wrapped message names the missing field so the caller can fix it.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrInvalidState is returned when an operation is attempted on a trip whose
// current state does not permit it (e.g. applying a tariff to an invoiced trip).
var ErrInvalidState = errors.New("invalid state")

// ErrScopeMismatch is returned when a tariff scoped to one client is applied
// to a trip belonging to a different client (or to no client at all).
var ErrScopeMismatch = errors.New("tariff scope mismatch")

// ErrTariffInactive is returned when the tariff chosen for application has
// been deactivated. The caller must choose a different tariff.
var ErrTariffInactive = errors.New("tariff inactive")

// ErrNothingToPay is returned by the payment ledger when the trip has no
// frozen carrier amount (or it is zero), so there is nothing to pay out.
var ErrNothingToPay = errors.New("nothing to pay")

// ErrAlreadyPaid is returned by the payment ledger when the trip is already
// paid. The guard is explicit rather than a silent success so callers can
// distinguish a no-op retry from a first settlement.
var ErrAlreadyPaid = errors.New("already paid")
