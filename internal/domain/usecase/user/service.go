package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
)

// DefaultMinPasswordLength is used when no minimum is configured
const DefaultMinPasswordLength = 6

// Service handles signup and credential verification
type Service struct {
	uow               persistence.UnitOfWork
	hasher            coreport.PasswordHasher
	timeProvider      coreport.TimeProvider
	minPasswordLength int
}

var _ usecase.UserUseCase = (*Service)(nil)

// NewUserService creates a new user Service
func NewUserService(
	uow persistence.UnitOfWork,
	hasher coreport.PasswordHasher,
	timeProvider coreport.TimeProvider,
	minPasswordLength int,
) *Service {
	if minPasswordLength <= 0 {
		minPasswordLength = DefaultMinPasswordLength
	}
	return &Service{
		uow:               uow,
		hasher:            hasher,
		timeProvider:      timeProvider,
		minPasswordLength: minPasswordLength,
	}
}

// Signup registers a user and opens its default checking account in one unit
func (s *Service) Signup(ctx context.Context, username, password string) (*entity.User, error) {
	username, err := entity.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if len(password) < s.minPasswordLength {
		return nil, fmt.Errorf("%w: at least %d characters required", errs.ErrWeakPassword, s.minPasswordLength)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := entity.NewUser(username, hash, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		if err := s.uow.GetUserRepository(ctx).Create(ctx, user); err != nil {
			return err
		}

		checking, err := entity.NewAccount(user.ID, entity.DefaultAccountName, string(entity.AccountChecking), s.timeProvider)
		if err != nil {
			return err
		}
		return s.uow.GetAccountRepository(ctx).Create(ctx, checking)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate checks a username/password pair. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	// a name that could never be stored cannot belong to anyone
	username, err := entity.NormalizeUsername(username)
	if err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	user, err := s.uow.GetUserRepository(ctx).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, errs.ErrInvalidCredentials
	}

	return user, nil
}
