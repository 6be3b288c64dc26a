package usecase

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// TransferResult holds both balances after a committed transfer
type TransferResult struct {
	FromBalance int64
	ToBalance   int64
}

// TransactionUseCase defines the money movement operations.
// Amounts are positive cents; the direction comes from the operation.
type TransactionUseCase interface {
	// Deposit credits amount to the named account and returns the new balance
	Deposit(ctx context.Context, userID uint64, accountName string, amount int64, note string) (int64, error)

	// Withdraw debits amount from the named account and returns the new balance
	Withdraw(ctx context.Context, userID uint64, accountName string, amount int64, note string) (int64, error)

	// Transfer moves amount between two accounts of the same user atomically
	Transfer(ctx context.Context, userID uint64, from, to string, amount int64, note string) (*TransferResult, error)

	// GetHistory returns up to limit entries of the named account, newest first
	GetHistory(ctx context.Context, userID uint64, accountName string, limit int) ([]*entity.Transaction, error)
}
