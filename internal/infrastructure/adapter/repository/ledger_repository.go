package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/model"
)

// LedgerRepository implements persistence.LedgerStore using GORM.
// Balances only change through ApplyLedgerEntry.
type LedgerRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewLedgerRepository creates a new LedgerRepository instance
func NewLedgerRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *LedgerRepository {
	return &LedgerRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// handleDatabaseError passes domain errors through and maps the rest
func (r *LedgerRepository) handleDatabaseError(operation string, err error, accountID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrAccountNotFound
	}
	if isDomainError(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if r.errorClassifier.IsConflictError(err) {
		r.logger.Debug("Write conflict on account", map[string]any{
			"account_id": accountID,
			"operation":  operation,
			"error":      err.Error(),
		})
	} else {
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
			"account_id": accountID,
			"error":      err.Error(),
		})
	}
	return r.errorClassifier.mapStorageError(operation, err)
}

// GetAccountBalance returns the current balance of an account in cents
func (r *LedgerRepository) GetAccountBalance(ctx context.Context, accountID uint64) (int64, error) {
	var accountModel model.Account
	err := r.db.WithContext(ctx).Select("id", "balance").First(&accountModel, accountID).Error
	if err != nil {
		return 0, r.handleDatabaseError("reading balance", err, accountID)
	}
	return accountModel.Balance, nil
}

// ApplyLedgerEntry locks the account row, applies the signed change and appends the
// transaction record. Inside a unit the nested transaction is a savepoint, so a
// failure leaves the unit exactly as it was.
func (r *LedgerRepository) ApplyLedgerEntry(
	ctx context.Context,
	accountID uint64,
	kind entity.TransactionKind,
	signedAmount int64,
	note string,
) (int64, *entity.Transaction, error) {
	if err := kind.ValidateSignedAmount(signedAmount); err != nil {
		return 0, nil, err
	}

	var transaction *entity.Transaction

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var accountModel model.Account
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "balance").
			First(&accountModel, accountID).Error
		if err != nil {
			return err
		}

		newBalance, err := entity.ApplyChange(accountID, accountModel.Balance, signedAmount)
		if err != nil {
			return err
		}

		transaction, err = entity.NewTransaction(accountID, kind, signedAmount, newBalance, note, r.timeProvider)
		if err != nil {
			return err
		}

		result := tx.Model(&model.Account{}).Where("id = ?", accountID).Update("balance", newBalance)
		if result.Error != nil {
			return result.Error
		}

		transactionModel := model.TransactionFromEntity(transaction)
		if err := tx.Create(transactionModel).Error; err != nil {
			return err
		}
		transaction.ID = transactionModel.ID
		return nil
	})
	if err != nil {
		return 0, nil, r.handleDatabaseError("applying ledger entry", err, accountID)
	}

	return transaction.BalanceAfter, transaction, nil
}

// LockAccounts takes row locks one account at a time in ascending ID order, so two
// units locking overlapping sets never wait on each other in a cycle
func (r *LedgerRepository) LockAccounts(ctx context.Context, accountIDs ...uint64) error {
	ids := slices.Clone(accountIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	db := r.db.WithContext(ctx)
	for _, id := range ids {
		var accountModel model.Account
		err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&accountModel, id).Error
		if err != nil {
			return r.handleDatabaseError("locking account", err, id)
		}
	}
	return nil
}

// ListTransactions returns at most limit entries, newest first
func (r *LedgerRepository) ListTransactions(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		return []*entity.Transaction{}, nil
	}

	var transactionModels []model.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Limit(limit).
		Find(&transactionModels).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing transactions", err, accountID)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModels[i].ToEntity())
	}
	return transactions, nil
}
