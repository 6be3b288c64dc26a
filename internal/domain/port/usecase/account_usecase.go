package usecase

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// AccountUseCase defines account management operations.
// Every call is scoped to the authenticated userID.
type AccountUseCase interface {
	// CreateAccount opens an empty account of the given kind
	CreateAccount(ctx context.Context, userID uint64, name string, kind string) (*entity.Account, error)

	// GetAccount returns the named account with its current balance
	GetAccount(ctx context.Context, userID uint64, name string) (*entity.Account, error)

	// ListAccounts returns every account of the user ordered by ID
	ListAccounts(ctx context.Context, userID uint64) ([]*entity.Account, error)
}
