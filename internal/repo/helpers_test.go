package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/repo"
	"github.com/fletesapp/backend/testutil"
)

// newTestTx opens a transaction against the test database that is rolled back
// when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test.
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// newTestRepos returns the full repository bundle bound to a rolled-back
// transaction.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return repo.NewRepos(newTestTx(t))
}

// ---- fixtures --------------------------------------------------------------

func seedCarrier(t *testing.T, r repo.Repos) domain.Carrier {
	t.Helper()
	c, err := r.Carriers.Create(context.Background(), domain.Carrier{
		Name:  "Transporte Sur",
		Email: "sur@example.com",
	})
	require.NoError(t, err, "seed carrier")
	return c
}

func seedClient(t *testing.T, r repo.Repos) domain.Client {
	t.Helper()
	c, err := r.Clients.Create(context.Background(), domain.Client{Name: "Acme SA"})
	require.NoError(t, err, "seed client")
	return c
}

func seedTrip(t *testing.T, r repo.Repos, carrierID uuid.UUID, clientID *uuid.UUID) domain.Trip {
	t.Helper()
	trip, err := r.Trips.Create(context.Background(), domain.Trip{
		Origin:      "Buenos Aires",
		Destination: "Rosario",
		UnitType:    "semi",
		CarrierID:   carrierID,
		DriverName:  "J. Gomez",
		ClientID:    clientID,
	})
	require.NoError(t, err, "seed trip")
	return trip
}

func seedTariff(t *testing.T, r repo.Repos, mutate func(*domain.Tariff)) domain.Tariff {
	t.Helper()
	tariff := domain.Tariff{
		ClientAmount:  decimal.RequireFromString("600000.50"),
		CarrierAmount: decimal.NewFromInt(450000),
	}
	if mutate != nil {
		mutate(&tariff)
	}
	created, err := r.Tariffs.Create(context.Background(), tariff)
	require.NoError(t, err, "seed tariff")
	return created
}

func seedDelivery(t *testing.T, r repo.Repos, tripID uuid.UUID, day time.Time) domain.DeliveryRecord {
	t.Helper()
	rec, err := r.Deliveries.Create(context.Background(), domain.DeliveryRecord{
		TripID:   tripID,
		Number:   "R-0001-00012345",
		TripDate: day,
	})
	require.NoError(t, err, "seed delivery")
	return rec
}
