package usecase

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// UserUseCase defines signup and credential checks
type UserUseCase interface {
	// Signup registers a user together with a default checking account
	Signup(ctx context.Context, username, password string) (*entity.User, error)

	// Authenticate returns the user when the password matches
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
}
