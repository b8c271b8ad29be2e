package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fletesapp/backend/internal/domain"
)

// ReportService is the read-side engine: monthly per-client and per-carrier
// aggregates, the daily series, and the month-end projection. All four run
// over the same trip_listing rows with the same inclusion rule (snapshots of
// invoiced and paid trips accrue; pending and rejected trips contribute only
// to trip counts), so the numbers agree across reports.
type ReportService struct {
	store Store

	// now is the clock used to decide whether the requested month is still
	// open. Overridden in tests.
	now func() time.Time
}

// NewReportService constructs a ReportService backed by the provided store.
func NewReportService(store Store) *ReportService {
	return &ReportService{store: store, now: time.Now}
}

// MonthlyClientReport groups the month's trips by client. Trips without a
// client are skipped; nothing can be billed to nobody.
func (s *ReportService) MonthlyClientReport(ctx context.Context, m domain.Month) ([]domain.ClientAggregate, error) {
	rows, err := s.store.Repos().Listing.MonthRows(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.MonthlyClientReport: %w", err)
	}

	byClient := map[string]*domain.ClientAggregate{}
	for _, row := range rows {
		if row.ClientID == nil {
			continue
		}
		key := row.ClientID.String()
		agg, ok := byClient[key]
		if !ok {
			agg = &domain.ClientAggregate{ClientID: *row.ClientID, ClientName: row.ClientName}
			byClient[key] = agg
		}

		agg.TripCount++
		if row.State.Accrued() {
			if row.ClientAmountSnapshot != nil {
				agg.Billed = agg.Billed.Add(*row.ClientAmountSnapshot)
			}
			if row.CarrierAmountSnapshot != nil {
				agg.AccruedCost = agg.AccruedCost.Add(*row.CarrierAmountSnapshot)
			}
		}
		if row.State == domain.StatePaid && row.CarrierAmountSnapshot != nil {
			agg.PaidOut = agg.PaidOut.Add(*row.CarrierAmountSnapshot)
		}
	}

	out := make([]domain.ClientAggregate, 0, len(byClient))
	for _, agg := range byClient {
		agg.Margin = agg.Billed.Sub(agg.AccruedCost)
		agg.Outstanding = agg.AccruedCost.Sub(agg.PaidOut)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientName < out[j].ClientName })

	return out, nil
}

// MonthlyCarrierReport groups the month's trips by owning carrier account.
func (s *ReportService) MonthlyCarrierReport(ctx context.Context, m domain.Month) ([]domain.CarrierAggregate, error) {
	rows, err := s.store.Repos().Listing.MonthRows(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.MonthlyCarrierReport: %w", err)
	}

	byCarrier := map[string]*domain.CarrierAggregate{}
	for _, row := range rows {
		key := row.CarrierID.String()
		agg, ok := byCarrier[key]
		if !ok {
			agg = &domain.CarrierAggregate{CarrierID: row.CarrierID, CarrierName: row.CarrierName}
			byCarrier[key] = agg
		}

		agg.TripCount++
		if row.CarrierAmountSnapshot == nil {
			continue
		}
		if row.State.Accrued() {
			agg.AccruedCost = agg.AccruedCost.Add(*row.CarrierAmountSnapshot)
		}
		if row.State == domain.StatePaid {
			agg.PaidToDate = agg.PaidToDate.Add(*row.CarrierAmountSnapshot)
		}
	}

	out := make([]domain.CarrierAggregate, 0, len(byCarrier))
	for _, agg := range byCarrier {
		agg.OutstandingDebt = agg.AccruedCost.Sub(agg.PaidToDate)
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CarrierName < out[j].CarrierName })

	return out, nil
}

// DailySeries returns one bucket per calendar day of the month, index-aligned
// to day-of-month. Days with no qualifying trips report zeros, not absence.
func (s *ReportService) DailySeries(ctx context.Context, m domain.Month) ([]domain.DayBucket, error) {
	rows, err := s.store.Repos().Listing.MonthRows(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("service.ReportService.DailySeries: %w", err)
	}

	buckets := make([]domain.DayBucket, m.Days())
	for i := range buckets {
		buckets[i] = domain.DayBucket{Day: i + 1}
	}

	for _, row := range rows {
		if !row.State.Accrued() {
			continue
		}
		idx := row.TripDate.Day() - 1
		if idx < 0 || idx >= len(buckets) {
			continue
		}
		if row.ClientAmountSnapshot != nil {
			buckets[idx].Billed = buckets[idx].Billed.Add(*row.ClientAmountSnapshot)
		}
		if row.CarrierAmountSnapshot != nil {
			buckets[idx].Cost = buckets[idx].Cost.Add(*row.CarrierAmountSnapshot)
		}
	}

	for i := range buckets {
		buckets[i].Margin = buckets[i].Billed.Sub(buckets[i].Cost)
	}

	return buckets, nil
}

// MonthProjection extrapolates the month's accrued totals to month-end.
//
// For the current month elapsedDays is min(today's day-of-month, daysInMonth);
// closed months use the full day count, so their projection equals their
// actuals; history is never extrapolated. Billed and cost are each projected
// from their own daily average; projected margin is the difference of those
// two projections rather than a separately scaled figure.
func (s *ReportService) MonthProjection(ctx context.Context, m domain.Month) (domain.Projection, error) {
	rows, err := s.store.Repos().Listing.MonthRows(ctx, m)
	if err != nil {
		return domain.Projection{}, fmt.Errorf("service.ReportService.MonthProjection: %w", err)
	}

	var billed, cost decimal.Decimal
	for _, row := range rows {
		if !row.State.Accrued() {
			continue
		}
		if row.ClientAmountSnapshot != nil {
			billed = billed.Add(*row.ClientAmountSnapshot)
		}
		if row.CarrierAmountSnapshot != nil {
			cost = cost.Add(*row.CarrierAmountSnapshot)
		}
	}

	days := m.Days()
	today := s.now().UTC()
	current := domain.MonthOf(today) == m

	elapsed := days
	if current {
		elapsed = today.Day()
		if elapsed > days {
			elapsed = days
		}
	}
	if elapsed < 1 {
		elapsed = 1
	}

	p := domain.Projection{
		Month:        m,
		MonthLabel:   m.String(),
		DaysInMonth:  days,
		ElapsedDays:  elapsed,
		CurrentMonth: current,
		Billed:       projectMetric(billed, elapsed, days),
		Cost:         projectMetric(cost, elapsed, days),
	}

	margin := billed.Sub(cost)
	p.Margin = domain.ProjectionMetric{
		Actual:       margin,
		DailyAverage: margin.Div(decimal.NewFromInt(int64(elapsed))).Round(2),
		Projected:    p.Billed.Projected.Sub(p.Cost.Projected),
	}

	return p, nil
}

// projectMetric scales one metric's accrued total to month-end. Multiplying
// before dividing keeps closed months exact (actual × d/d == actual).
func projectMetric(actual decimal.Decimal, elapsed, days int) domain.ProjectionMetric {
	e := decimal.NewFromInt(int64(elapsed))
	d := decimal.NewFromInt(int64(days))
	return domain.ProjectionMetric{
		Actual:       actual,
		DailyAverage: actual.Div(e).Round(2),
		Projected:    actual.Mul(d).Div(e).Round(2),
	}
}
