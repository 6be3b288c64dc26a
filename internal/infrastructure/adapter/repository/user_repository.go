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

// UserRepository implements persistence.UserRepository using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrUserNotFound
	case r.errorClassifier.IsDuplicateKeyError(err):
		return errs.ErrDuplicateUser
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

// Create stores a new user and assigns its ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.UserFromEntity(user)
	userModel.ID = 0 // assigned by the sequence, also when a retried unit reuses the entity

	if err := r.db.WithContext(ctx).Omit("Accounts").Create(userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, map[string]any{"username": user.Username})
	}

	user.ID = userModel.ID
	return nil
}

// GetByUsername retrieves a user by login name
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting user by username", err, map[string]any{"username": username})
	}
	return userModel.ToEntity(), nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, map[string]any{"user_id": id})
	}
	return userModel.ToEntity(), nil
}

// Delete removes a user; accounts and their transactions cascade
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting user", result.Error, map[string]any{"user_id": id})
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
