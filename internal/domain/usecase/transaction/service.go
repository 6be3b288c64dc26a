package transaction

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
)

// Service moves money between accounts. It is the only component that changes
// balances, and it does so exclusively through LedgerStore.ApplyLedgerEntry.
// Every operation runs as a single unit of work; the service keeps no state.
type Service struct {
	uow       persistence.UnitOfWork
	validator *TransactionValidator
}

var _ usecase.TransactionUseCase = (*Service)(nil)

// NewTransactionService creates a new transaction service
func NewTransactionService(uow persistence.UnitOfWork) *Service {
	return &Service{
		uow:       uow,
		validator: NewTransactionValidator(),
	}
}

// Deposit credits amount cents to the named account
func (s *Service) Deposit(ctx context.Context, userID uint64, accountName string, amount int64, note string) (int64, error) {
	accountName, err := s.validator.ValidateMovement(userID, accountName, amount, note)
	if err != nil {
		return 0, err
	}
	return s.applyToNamedAccount(ctx, userID, accountName, entity.KindDeposit, amount, note)
}

// Withdraw debits amount cents from the named account. A withdrawal that would
// overdraw the account fails with ErrInsufficientFunds and changes nothing.
func (s *Service) Withdraw(ctx context.Context, userID uint64, accountName string, amount int64, note string) (int64, error) {
	accountName, err := s.validator.ValidateMovement(userID, accountName, amount, note)
	if err != nil {
		return 0, err
	}
	return s.applyToNamedAccount(ctx, userID, accountName, entity.KindWithdraw, -amount, note)
}

func (s *Service) applyToNamedAccount(
	ctx context.Context,
	userID uint64,
	accountName string,
	kind entity.TransactionKind,
	signedAmount int64,
	note string,
) (int64, error) {
	var balance int64

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		account, err := s.uow.GetAccountRepository(ctx).GetByName(ctx, userID, accountName)
		if err != nil {
			return err
		}

		balance, _, err = s.uow.GetLedgerStore(ctx).ApplyLedgerEntry(ctx, account.ID, kind, signedAmount, note)
		return err
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

// Transfer moves amount cents from one account of the user to another.
// The debit leg is applied before the credit leg inside one unit, with both
// rows locked in ascending ID order; a failure of either leg undoes both.
func (s *Service) Transfer(ctx context.Context, userID uint64, from, to string, amount int64, note string) (*usecase.TransferResult, error) {
	from, to, err := s.validator.ValidateTransfer(userID, from, to, amount, note)
	if err != nil {
		return nil, err
	}

	result := &usecase.TransferResult{}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		accounts := s.uow.GetAccountRepository(ctx)

		source, err := accounts.GetByName(ctx, userID, from)
		if err != nil {
			return err
		}
		destination, err := accounts.GetByName(ctx, userID, to)
		if err != nil {
			return err
		}
		if source.ID == destination.ID {
			return errs.ErrSameAccountTransfer
		}

		ledger := s.uow.GetLedgerStore(ctx)
		if err := ledger.LockAccounts(ctx, source.ID, destination.ID); err != nil {
			return err
		}

		result.FromBalance, _, err = ledger.ApplyLedgerEntry(ctx, source.ID, entity.KindTransferOut, -amount, note)
		if err != nil {
			return err
		}

		result.ToBalance, _, err = ledger.ApplyLedgerEntry(ctx, destination.ID, entity.KindTransferIn, amount, note)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetHistory returns the most recent entries of the named account, newest first.
// The limit is clamped to [MinHistoryLimit, MaxHistoryLimit].
func (s *Service) GetHistory(ctx context.Context, userID uint64, accountName string, limit int) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	account, err := s.uow.GetAccountRepository(ctx).GetByName(ctx, userID, entity.LookupName(accountName))
	if err != nil {
		return nil, err
	}

	return s.uow.GetLedgerStore(ctx).ListTransactions(ctx, account.ID, ClampHistoryLimit(limit))
}
