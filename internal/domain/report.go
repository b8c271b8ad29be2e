package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripRow is the flat read model joining a trip with its client, carrier, and
// delivery record. It backs both the export listing and the reporting engine,
// so all reports share one inclusion rule and one date column.
//
// TripDate is the delivery record's trip date when one exists, else the
// trip's creation date; the single window-filtering column.
type TripRow struct {
	TripID      uuid.UUID `json:"trip_id"`
	State       TripState `json:"state"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	UnitType    string    `json:"unit_type"`
	TripDate    time.Time `json:"trip_date"`

	CarrierID   uuid.UUID `json:"carrier_id"`
	CarrierName string    `json:"carrier_name"`
	DriverName  string    `json:"driver_name,omitempty"`

	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	ClientName string     `json:"client_name,omitempty"`

	ClientAmountSnapshot  *decimal.Decimal `json:"client_amount_snapshot,omitempty"`
	CarrierAmountSnapshot *decimal.Decimal `json:"carrier_amount_snapshot,omitempty"`

	DeliveryNumber string    `json:"delivery_number,omitempty"`
	DocumentRef    string    `json:"document_ref,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RowFilter narrows the flat listing for export. Zero values mean "no filter".
type RowFilter struct {
	State    TripState
	ClientID *uuid.UUID
	UnitType string
	// From/To bound TripDate inclusively when non-zero.
	From time.Time
	To   time.Time
	// Search matches carrier, driver, destination, and delivery number.
	Search string
}

// ClientAggregate is one row of the monthly per-client report.
// Billed and AccruedCost sum the frozen snapshots of invoiced and paid trips;
// PaidOut counts only paid trips, so Outstanding is the cost accrued but not
// yet settled with carriers for this client's trips.
type ClientAggregate struct {
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"`
	TripCount   int             `json:"trip_count"`
	Billed      decimal.Decimal `json:"billed"`
	AccruedCost decimal.Decimal `json:"accrued_cost"`
	Margin      decimal.Decimal `json:"margin"`
	PaidOut     decimal.Decimal `json:"paid_out"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// CarrierAggregate is one row of the monthly per-carrier report.
type CarrierAggregate struct {
	CarrierID       uuid.UUID       `json:"carrier_id"`
	CarrierName     string          `json:"carrier_name"`
	TripCount       int             `json:"trip_count"`
	AccruedCost     decimal.Decimal `json:"accrued_cost"`
	PaidToDate      decimal.Decimal `json:"paid_to_date"`
	OutstandingDebt decimal.Decimal `json:"outstanding_debt"`
}

// DayBucket is one calendar day of the daily series. Days with no qualifying
// trips report zeros, not absence; the series always has daysInMonth entries.
type DayBucket struct {
	Day    int             `json:"day"`
	Billed decimal.Decimal `json:"billed"`
	Cost   decimal.Decimal `json:"cost"`
	Margin decimal.Decimal `json:"margin"`
}

// ProjectionMetric carries one metric's actual accrued total, its per-day
// average over the elapsed portion of the month, and the month-end projection.
type ProjectionMetric struct {
	Actual       decimal.Decimal `json:"actual"`
	DailyAverage decimal.Decimal `json:"daily_average"`
	Projected    decimal.Decimal `json:"projected"`
}

// Projection is the month-end projection for billed, cost, and margin.
// For closed months ElapsedDays == DaysInMonth and Projected == Actual; the
// engine never extrapolates history. Margin.Projected is the difference of the
// independently projected billed and cost figures.
type Projection struct {
	Month        Month            `json:"-"`
	MonthLabel   string           `json:"month"`
	DaysInMonth  int              `json:"days_in_month"`
	ElapsedDays  int              `json:"elapsed_days"`
	CurrentMonth bool             `json:"current_month"`
	Billed       ProjectionMetric `json:"billed"`
	Cost         ProjectionMetric `json:"cost"`
	Margin       ProjectionMetric `json:"margin"`
}
