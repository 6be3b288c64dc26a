package account

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
)

// Service handles account management for authenticated users
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
}

var _ usecase.AccountUseCase = (*Service)(nil)

// NewAccountService creates a new account Service
func NewAccountService(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
	}
}

// CreateAccount opens a new empty account of the given kind
func (s *Service) CreateAccount(ctx context.Context, userID uint64, name string, kind string) (*entity.Account, error) {
	account, err := entity.NewAccount(userID, name, kind, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.uow.GetAccountRepository(ctx).Create(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount returns the named account of the user
func (s *Service) GetAccount(ctx context.Context, userID uint64, name string) (*entity.Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.GetAccountRepository(ctx).GetByName(ctx, userID, entity.LookupName(name))
}

// ListAccounts returns the user's accounts in creation order
func (s *Service) ListAccounts(ctx context.Context, userID uint64) ([]*entity.Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.GetAccountRepository(ctx).ListByUser(ctx, userID)
}
