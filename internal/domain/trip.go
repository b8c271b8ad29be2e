// Package domain contains the core data types for the freight billing service.
// This package has no dependencies beyond uuid and decimal and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripState is the lifecycle state of a trip.
// The graph is pending → approved → invoiced → paid, with rejected reachable
// from pending or approved. Paid and rejected are terminal.
type TripState string

const (
	StatePending  TripState = "pending"
	StateApproved TripState = "approved"
	StateInvoiced TripState = "invoiced"
	StatePaid     TripState = "paid"
	StateRejected TripState = "rejected"
)

// transitions is the full state graph. A target not listed under the current
// state is unreachable; guards only ever apply to listed targets.
var transitions = map[TripState][]TripState{
	StatePending:  {StateApproved, StateRejected},
	StateApproved: {StateInvoiced, StateRejected},
	StateInvoiced: {StatePaid},
}

// Valid reports whether s is one of the five known states.
func (s TripState) Valid() bool {
	switch s {
	case StatePending, StateApproved, StateInvoiced, StatePaid, StateRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s TripState) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether target is reachable from s in the state
// graph. It does not evaluate guards (client/snapshot presence); that is the
// service's job.
func (s TripState) CanTransitionTo(target TripState) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Accrued reports whether a trip in state s counts toward billed/cost totals.
// Money is recognized at invoicing, not at cash movement.
func (s TripState) Accrued() bool {
	return s == StateInvoiced || s == StatePaid
}

// Trip is the central entity: a single freight movement owned by a carrier
// account. The snapshot pair is frozen at tariff application and is the
// durable source of truth for billing; it is never re-derived from live
// tariffs, even if the referenced tariff later changes or deactivates.
//
// Invariant: ClientAmountSnapshot and CarrierAmountSnapshot are either both
// nil or both non-nil.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	State       TripState `json:"state"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	UnitType    string    `json:"unit_type"`

	// CarrierID is the owning carrier account. DriverName optionally records
	// the real driver when it differs from the account holder.
	CarrierID  uuid.UUID `json:"carrier_id"`
	DriverName string    `json:"driver_name,omitempty"`

	ClientID *uuid.UUID `json:"client_id,omitempty"`
	TariffID *uuid.UUID `json:"tariff_id,omitempty"`

	ClientAmountSnapshot  *decimal.Decimal `json:"client_amount_snapshot,omitempty"`
	CarrierAmountSnapshot *decimal.Decimal `json:"carrier_amount_snapshot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSnapshots reports whether the frozen amount pair is present.
func (t Trip) HasSnapshots() bool {
	return t.ClientAmountSnapshot != nil && t.CarrierAmountSnapshot != nil
}

// DeliveryRecord (remito) is the proof-of-delivery metadata for a trip.
// One-to-one with the trip; the document itself lives in external storage and
// is referenced here by an opaque key.
type DeliveryRecord struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Number      string    `json:"number"`
	TripDate    time.Time `json:"trip_date"`
	DocumentRef string    `json:"document_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TripFilter narrows trip listings. Zero values mean "no filter".
type TripFilter struct {
	State     TripState
	ClientID  *uuid.UUID
	CarrierID *uuid.UUID
	UnitType  string
	// Search matches origin, destination, and driver name, case-insensitively.
	Search string
}
