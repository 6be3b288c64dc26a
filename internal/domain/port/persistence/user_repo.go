package persistence

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// UserRepository defines methods to interact with user data
type UserRepository interface {
	// Create stores a new user and assigns its ID
	//
	// Possible errors:
	// - ErrDuplicateUser: If the username is taken
	// - ErrStorageUnavailable: If the store cannot be reached
	Create(ctx context.Context, user *entity.User) error

	// GetByUsername retrieves a user by login name
	//
	// Possible errors:
	// - ErrUserNotFound: If no user has that name
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// Delete removes a user together with its accounts and their transactions
	//
	// Possible errors:
	// - ErrUserNotFound: If the user doesn't exist
	Delete(ctx context.Context, id uint64) error
}
