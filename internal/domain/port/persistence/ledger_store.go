package persistence

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// LedgerStore owns account balances and their transaction history.
// ApplyLedgerEntry is the only way a balance changes.
type LedgerStore interface {
	// GetAccountBalance returns the current balance of an account in cents
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrStorageUnavailable: If the store cannot be reached
	GetAccountBalance(ctx context.Context, accountID uint64) (int64, error)

	// ApplyLedgerEntry locks the account, checks that balance+signedAmount stays
	// non-negative, then updates the balance and appends one transaction record
	// as a single atomic step. Nothing is written when an error is returned.
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrInvalidAmount: If the sign doesn't match the kind or the balance would overflow
	// - ErrInsufficientFunds: If the balance would become negative
	// - ErrWriteConflict: If a concurrent unit won a race on the same row
	// - ErrStorageUnavailable: If the store cannot be reached
	ApplyLedgerEntry(ctx context.Context, accountID uint64, kind entity.TransactionKind, signedAmount int64, note string) (int64, *entity.Transaction, error)

	// LockAccounts row-locks the given accounts in ascending ID order until the
	// surrounding unit ends. Outside a unit it only checks existence.
	//
	// Possible errors:
	// - ErrAccountNotFound: If any account doesn't exist
	// - ErrWriteConflict: If a lock could not be taken without deadlocking
	LockAccounts(ctx context.Context, accountIDs ...uint64) error

	// ListTransactions returns at most limit entries, newest first
	//
	// Possible errors:
	// - ErrStorageUnavailable: If the store cannot be reached
	ListTransactions(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error)
}
