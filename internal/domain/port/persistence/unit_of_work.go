package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating operations across multiple
// repositories inside one atomic unit
type UnitOfWork interface {
	// Begin starts a new unit and returns a context bound to it
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the unit bound to the given context
	Commit(ctx context.Context) error

	// Rollback discards every change made through the unit bound to the given context
	Rollback(ctx context.Context) error

	// Execute runs fn inside a unit: it begins, commits when fn returns nil and
	// rolls back otherwise. Units failing with ErrWriteConflict are retried from
	// the start; once retries are exhausted the error matches ErrStorageUnavailable.
	// When ctx is already bound to a unit, fn joins it and no retry happens.
	//
	// Possible errors:
	// - any error returned by fn
	// - ErrStorageUnavailable: If the store is unreachable or conflicts persist
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	// GetLedgerStore returns a ledger store bound to the unit in ctx, if any
	GetLedgerStore(ctx context.Context) LedgerStore

	// GetAccountRepository returns an account repository bound to the unit in ctx, if any
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetUserRepository returns a user repository bound to the unit in ctx, if any
	GetUserRepository(ctx context.Context) UserRepository
}
