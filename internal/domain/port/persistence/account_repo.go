package persistence

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// AccountRepository defines methods to manage account records.
// It never changes balances.
type AccountRepository interface {
	// Create stores a new account and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateAccountName: If the owner already has an account with that name
	// - ErrUserNotFound: If the owner doesn't exist
	// - ErrStorageUnavailable: If the store cannot be reached
	Create(ctx context.Context, account *entity.Account) error

	// GetByName retrieves the account of userID with the given name
	//
	// Possible errors:
	// - ErrAccountNotFound: If no such account exists for the owner
	GetByName(ctx context.Context, userID uint64, name string) (*entity.Account, error)

	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// ListByUser returns every account of userID ordered by ID
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Account, error)

	// Delete removes an account together with its transactions
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	Delete(ctx context.Context, id uint64) error
}
