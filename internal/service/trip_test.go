package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fletesapp/backend/internal/domain"
	"github.com/fletesapp/backend/internal/repo"
	"github.com/fletesapp/backend/internal/service"
)

// ---- fixtures --------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Origin:      "Buenos Aires",
		Destination: "Rosario",
		UnitType:    "semi",
		CarrierID:   uuid.New(),
		DriverName:  "J. Gomez",
	}
}

func snapshotPair() (*decimal.Decimal, *decimal.Decimal) {
	client := decimal.NewFromInt(600000)
	carrier := decimal.NewFromInt(450000)
	return &client, &carrier
}

// knownCarriers returns a CarrierRepo that recognizes every ID.
func knownCarriers() *mockCarrierRepo {
	return &mockCarrierRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Carrier, error) {
			return domain.Carrier{ID: id, Name: "Transporte Sur"}, nil
		},
	}
}

// activeClients returns a ClientRepo that recognizes every ID as active.
func activeClients() *mockClientRepo {
	return &mockClientRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Client, error) {
			return domain.Client{ID: id, Name: "Acme SA", Active: true}, nil
		},
	}
}

// echoTrips returns a TripRepo whose write methods echo their inputs, for
// tests that only exercise validation and guard logic.
func echoTrips() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) {
			t.ID = uuid.New()
			t.State = domain.StatePending
			return t, nil
		},
		setState: func(_ context.Context, id uuid.UUID, s domain.TripState) (domain.Trip, error) {
			return domain.Trip{ID: id, State: s}, nil
		},
		assignClient: func(_ context.Context, tripID, clientID uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: tripID, ClientID: &clientID}, nil
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	store := &fakeStore{repos: repo.Repos{
		Trips:    echoTrips(),
		Carriers: knownCarriers(),
	}}
	svc := service.NewTripService(store)

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, domain.StatePending, got.State, "new trips start pending")
	assert.Equal(t, "Rosario", got.Destination)
}

func TestTripService_Create_MissingFields(t *testing.T) {
	svc := service.NewTripService(&fakeStore{})

	tests := []struct {
		name   string
		mutate func(*domain.Trip)
	}{
		{"origin", func(tr *domain.Trip) { tr.Origin = "  " }},
		{"destination", func(tr *domain.Trip) { tr.Destination = "" }},
		{"unit_type", func(tr *domain.Trip) { tr.UnitType = "" }},
		{"carrier_id", func(tr *domain.Trip) { tr.CarrierID = uuid.Nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trip := validTrip()
			tc.mutate(&trip)

			_, err := svc.Create(context.Background(), trip)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_UnknownCarrier(t *testing.T) {
	store := &fakeStore{repos: repo.Repos{
		Carriers: &mockCarrierRepo{
			getByID: func(_ context.Context, _ uuid.UUID) (domain.Carrier, error) {
				return domain.Carrier{}, domain.ErrNotFound
			},
		},
	}}
	svc := service.NewTripService(store)

	_, err := svc.Create(context.Background(), validTrip())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Create_InactiveClient(t *testing.T) {
	clientID := uuid.New()
	store := &fakeStore{repos: repo.Repos{
		Carriers: knownCarriers(),
		Clients: &mockClientRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Client, error) {
				return domain.Client{ID: id, Active: false}, nil
			},
		},
	}}
	svc := service.NewTripService(store)

	trip := validTrip()
	trip.ClientID = &clientID

	_, err := svc.Create(context.Background(), trip)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- ChangeState -----------------------------------------------------------

// tripInState wires a store whose TripRepo returns a trip in the given state
// from GetForUpdate and records the state written by SetState.
func tripInState(trip domain.Trip) (*fakeStore, *domain.TripState) {
	var written domain.TripState
	trips := echoTrips()
	trips.getForUpdate = func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
		return trip, nil
	}
	trips.setState = func(_ context.Context, id uuid.UUID, s domain.TripState) (domain.Trip, error) {
		written = s
		return domain.Trip{ID: id, State: s}, nil
	}
	return &fakeStore{repos: repo.Repos{Trips: trips, Clients: activeClients()}}, &written
}

func TestTripService_ChangeState_PendingToApproved(t *testing.T) {
	store, written := tripInState(domain.Trip{ID: uuid.New(), State: domain.StatePending})
	svc := service.NewTripService(store)

	got, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateApproved)

	require.NoError(t, err)
	assert.Equal(t, domain.StateApproved, got.State)
	assert.Equal(t, domain.StateApproved, *written)
}

func TestTripService_ChangeState_UnknownState(t *testing.T) {
	svc := service.NewTripService(&fakeStore{})

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.TripState("archived"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_ChangeState_PaidUnreachableDirectly(t *testing.T) {
	// Even an invoiced trip cannot be moved to paid through the state
	// endpoint; only a registered payment settles a trip.
	store, _ := tripInState(domain.Trip{ID: uuid.New(), State: domain.StateInvoiced})
	svc := service.NewTripService(store)

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StatePaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTripService_ChangeState_NoSkippingApproval(t *testing.T) {
	store, _ := tripInState(domain.Trip{ID: uuid.New(), State: domain.StatePending})
	svc := service.NewTripService(store)

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateInvoiced)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTripService_ChangeState_TerminalStatesFrozen(t *testing.T) {
	for _, state := range []domain.TripState{domain.StatePaid, domain.StateRejected} {
		store, _ := tripInState(domain.Trip{ID: uuid.New(), State: state})
		svc := service.NewTripService(store)

		_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateApproved)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "from %s", state)
	}
}

func TestTripService_ChangeState_InvoiceRequiresClient(t *testing.T) {
	clientAmt, carrierAmt := snapshotPair()
	store, _ := tripInState(domain.Trip{
		ID:                    uuid.New(),
		State:                 domain.StateApproved,
		ClientAmountSnapshot:  clientAmt,
		CarrierAmountSnapshot: carrierAmt,
	})
	svc := service.NewTripService(store)

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateInvoiced)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
}

func TestTripService_ChangeState_InvoiceRequiresSnapshots(t *testing.T) {
	clientID := uuid.New()
	store, _ := tripInState(domain.Trip{
		ID:       uuid.New(),
		State:    domain.StateApproved,
		ClientID: &clientID,
	})
	svc := service.NewTripService(store)

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateInvoiced)
	assert.ErrorIs(t, err, domain.ErrPreconditionFailed)
}

func TestTripService_ChangeState_InvoiceWithGuardsSatisfied(t *testing.T) {
	clientID := uuid.New()
	clientAmt, carrierAmt := snapshotPair()
	store, written := tripInState(domain.Trip{
		ID:                    uuid.New(),
		State:                 domain.StateApproved,
		ClientID:              &clientID,
		ClientAmountSnapshot:  clientAmt,
		CarrierAmountSnapshot: carrierAmt,
	})
	svc := service.NewTripService(store)

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateInvoiced)

	require.NoError(t, err)
	assert.Equal(t, domain.StateInvoiced, *written)
}

func TestTripService_ChangeState_ApprovedToRejected(t *testing.T) {
	store, written := tripInState(domain.Trip{ID: uuid.New(), State: domain.StateApproved})
	svc := service.NewTripService(store)

	_, err := svc.ChangeState(context.Background(), uuid.New(), domain.StateRejected)

	require.NoError(t, err)
	assert.Equal(t, domain.StateRejected, *written)
}

// ---- AssignClient ----------------------------------------------------------

func TestTripService_AssignClient_WhilePending(t *testing.T) {
	store, _ := tripInState(domain.Trip{ID: uuid.New(), State: domain.StatePending})
	svc := service.NewTripService(store)

	clientID := uuid.New()
	got, err := svc.AssignClient(context.Background(), uuid.New(), clientID)

	require.NoError(t, err)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, clientID, *got.ClientID)
}

func TestTripService_AssignClient_InvoicedTripRefuses(t *testing.T) {
	store, _ := tripInState(domain.Trip{ID: uuid.New(), State: domain.StateInvoiced})
	svc := service.NewTripService(store)

	_, err := svc.AssignClient(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestTripService_AssignClient_InactiveClient(t *testing.T) {
	trips := echoTrips()
	trips.getForUpdate = func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
		return domain.Trip{ID: id, State: domain.StatePending}, nil
	}
	store := &fakeStore{repos: repo.Repos{
		Trips: trips,
		Clients: &mockClientRepo{
			getByID: func(_ context.Context, id uuid.UUID) (domain.Client, error) {
				return domain.Client{ID: id, Active: false}, nil
			},
		},
	}}
	svc := service.NewTripService(store)

	_, err := svc.AssignClient(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_List_NilBecomesEmpty(t *testing.T) {
	store := &fakeStore{repos: repo.Repos{
		Trips: &mockTripRepo{
			list: func(_ context.Context, _ domain.TripFilter) ([]domain.Trip, error) {
				return nil, nil
			},
		},
	}}
	svc := service.NewTripService(store)

	got, err := svc.List(context.Background(), domain.TripFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
