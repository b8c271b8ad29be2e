package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tariff is a priced rule defining what the client is charged and what the
// carrier is paid for a matching trip. Scope fields are optional: a nil field
// matches any trip. A fully unscoped tariff is a general fallback rate.
//
// Tariffs are never mutated once applied to a trip; corrections are made by
// deactivating the tariff and creating a new one. Trips keep billing off
// their frozen snapshots regardless.
type Tariff struct {
	ID uuid.UUID `json:"id"`

	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	UnitType    *string    `json:"unit_type,omitempty"`

	ClientAmount  decimal.Decimal `json:"client_amount"`
	CarrierAmount decimal.Decimal `json:"carrier_amount"`

	// SecondTripPct is an optional percentage adjustment applied when the same
	// unit runs a second trip on one day (e.g. 50 means half rate).
	SecondTripPct *decimal.Decimal `json:"second_trip_pct,omitempty"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Specificity ranks a tariff by how narrowly it is scoped, so candidate lists
// can be ordered most-specific-first. The weights make the ordering
// lexicographic on (client, destination, unit): any client-scoped tariff
// outranks every general one, client+destination outranks client-only, and
// the fully general fallback ranks last.
//
//	client+destination+unit  → 7
//	client+destination       → 6
//	client only              → 4
//	fully general            → 0
func (t Tariff) Specificity() int {
	rank := 0
	if t.ClientID != nil {
		rank += 4
	}
	if t.Destination != nil {
		rank += 2
	}
	if t.UnitType != nil {
		rank++
	}
	return rank
}

// MatchesClient reports whether the tariff may be applied to a trip belonging
// to the given client. A nil tariff scope matches any trip, including trips
// with no client assigned yet. A client-scoped tariff requires an exact match.
func (t Tariff) MatchesClient(clientID *uuid.UUID) bool {
	if t.ClientID == nil {
		return true
	}
	return clientID != nil && *clientID == *t.ClientID
}
