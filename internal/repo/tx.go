package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// beginner is the subset of *pgxpool.Pool the Store needs: plain query access
// plus the ability to open transactions. pgx.Tx also satisfies it (a nested
// Begin becomes a savepoint), which lets integration tests wrap a whole Store
// in one rolled-back outer transaction.
type beginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos bundles all repositories bound to a single database handle.
// Inside Store.WithTx that handle is one transaction, so every call through
// the bundle sees and produces the same atomic unit of work.
type Repos struct {
	Trips      TripRepo
	Tariffs    TariffRepo
	Clients    ClientRepo
	Carriers   CarrierRepo
	Deliveries DeliveryRepo
	Payments   PaymentRepo
	Listing    ListingRepo
}

// NewRepos constructs the repository bundle over the given handle.
func NewRepos(db db) Repos {
	return Repos{
		Trips:      NewTripRepo(db),
		Tariffs:    NewTariffRepo(db),
		Clients:    NewClientRepo(db),
		Carriers:   NewCarrierRepo(db),
		Deliveries: NewDeliveryRepo(db),
		Payments:   NewPaymentRepo(db),
		Listing:    NewListingRepo(db),
	}
}

// Store is the transaction boundary the service layer programs against.
// Every lifecycle and ledger mutation runs inside WithTx so that the guard
// check and the write land in the database as one unit; plain reads go
// through Repos() against the pool.
type Store struct {
	db beginner
}

// NewStore constructs a Store. In production pass *pgxpool.Pool; in tests a
// pgx.Tx works and turns every WithTx into a rollback-safe savepoint.
func NewStore(db beginner) *Store {
	return &Store{db: db}
}

// Repos returns the repository bundle bound to the underlying pool, for
// single-statement reads that need no transaction.
func (s *Store) Repos() Repos {
	return NewRepos(s.db)
}

// WithTx runs fn inside one database transaction. The bundle passed to fn is
// bound to that transaction. Any error from fn rolls the transaction back and
// is returned unwrapped, so sentinel checks with errors.Is still work at the
// HTTP boundary.
func (s *Store) WithTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Store.WithTx: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Store.WithTx: commit: %w", err)
	}
	return nil
}
