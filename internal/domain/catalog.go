package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a billing counterparty. Clients are soft-deleted only (Active set
// to false) because trips keep referencing them forever.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Carrier is the account that owns trips and receives payouts. It may or may
// not correspond to the individual driving the unit (see Trip.DriverName).
type Carrier struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
