package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrAccountNotFound
	case r.errorClassifier.IsDuplicateKeyError(err):
		return errs.ErrDuplicateAccountName
	case r.errorClassifier.IsForeignKeyError(err):
		return errs.ErrUserNotFound
	}

	if !r.errorClassifier.IsConflictError(err) {
		logFields := map[string]any{"error": err.Error()}
		for k, v := range fields {
			logFields[k] = v
		}
		r.logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)
	}
	return r.errorClassifier.mapStorageError(operation, err)
}

// Create stores a new account and assigns its ID
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountModel := model.AccountFromEntity(account)
	accountModel.ID = 0 // assigned by the sequence, also when a retried unit reuses the entity

	if err := r.db.WithContext(ctx).Create(accountModel).Error; err != nil {
		return r.handleDatabaseError("creating account", err, map[string]any{
			"user_id": account.UserID,
			"name":    account.Name,
		})
	}

	account.ID = accountModel.ID
	return nil
}

// GetByName retrieves the account of userID with the given name
func (r *AccountRepository) GetByName(ctx context.Context, userID uint64, name string) (*entity.Account, error) {
	var accountModel model.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&accountModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting account by name", err, map[string]any{
			"user_id": userID,
			"name":    name,
		})
	}
	return accountModel.ToEntity(), nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var accountModel model.Account
	if err := r.db.WithContext(ctx).First(&accountModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting account", err, map[string]any{"account_id": id})
	}
	return accountModel.ToEntity(), nil
}

// ListByUser returns every account of userID ordered by ID
func (r *AccountRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Account, error) {
	var accountModels []model.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&accountModels).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing accounts", err, map[string]any{"user_id": userID})
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for i := range accountModels {
		accounts = append(accounts, accountModels[i].ToEntity())
	}
	return accounts, nil
}

// Delete removes an account; its transactions go with it through ON DELETE CASCADE
func (r *AccountRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Account{}, id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting account", result.Error, map[string]any{"account_id": id})
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
