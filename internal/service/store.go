// Package service contains the business logic for the freight billing API.
// Services validate inputs, enforce lifecycle and ledger rules, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"

	"github.com/fletesapp/backend/internal/repo"
)

// Store is the transactional surface the services program against.
// Production code passes *repo.Store; unit tests pass a fake whose WithTx
// simply invokes fn with mock repositories; the atomicity contract itself is
// covered by the repo integration tests.
type Store interface {
	// Repos returns pool-bound repositories for single-statement reads.
	Repos() repo.Repos

	// WithTx runs fn inside one database transaction; the repositories passed
	// to fn are bound to it. Guard checks and writes inside fn land atomically.
	WithTx(ctx context.Context, fn func(repo.Repos) error) error
}
