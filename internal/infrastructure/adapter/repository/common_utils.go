package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	ConflictError     ErrorType = "conflict"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
	NotFoundError     ErrorType = "not_found"
	DataError         ErrorType = "data"
)

// PostgreSQL SQLSTATE codes
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
	sqlStateUniqueViolation      = "23505"
	sqlStateForeignKeyViolation  = "23503"
	sqlStateCheckViolation       = "23514"

	// class 22 covers values the column cannot hold: 22001 too long,
	// 22021 bad encoding, 22003 out of range
	sqlStateClassDataException = "22"
)

// ErrorClassifier provides methods to classify database errors.
// SQLSTATE codes are used when the driver exposes them; message matching is the fallback.
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundError
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsConflictError(err):
		return ConflictError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsDataError(err):
		return DataError
	case c.IsConnectionError(err):
		return ConnectionError
	}
	return ""
}

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsDuplicateKeyError checks if the error is a unique constraint violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if code := sqlState(err); code != "" {
		return code == sqlStateUniqueViolation
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint")
}

// IsConflictError checks if a concurrent transaction won a race: serialization
// failures, deadlocks and lock timeouts. The whole unit may be retried.
func (c *ErrorClassifier) IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	switch sqlState(err) {
	case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
		return true
	case "":
	default:
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "lock wait timeout")
}

// IsForeignKeyError checks if a referenced row is missing
func (c *ErrorClassifier) IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if code := sqlState(err); code != "" {
		return code == sqlStateForeignKeyViolation
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "foreign key")
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	switch sqlState(err) {
	case sqlStateUniqueViolation, sqlStateForeignKeyViolation, sqlStateCheckViolation:
		return true
	case "":
		return strings.Contains(err.Error(), "violates")
	}
	return false
}

// IsDataError checks if the database rejected a value itself. Such input
// fails the same way on every attempt.
func (c *ErrorClassifier) IsDataError(err error) bool {
	return strings.HasPrefix(sqlState(err), sqlStateClassDataException)
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if pgconn.Timeout(err) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "server closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "dial")
}

// mapStorageError converts an unexpected database error into a domain error.
// Conflicts become ErrWriteConflict, rejected values ErrInvalidRequest;
// everything else is a StorageError.
func (c *ErrorClassifier) mapStorageError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if c.IsConflictError(err) {
		return fmt.Errorf("%w: %s: %s", errs.ErrWriteConflict, operation, err.Error())
	}
	if c.IsDataError(err) {
		return fmt.Errorf("%w: %s: %s", errs.ErrInvalidRequest, operation, err.Error())
	}
	return errs.NewStorageError(operation, err)
}

// MapError is the package level form of mapStorageError used outside repositories
func MapError(operation string, err error) error {
	return NewErrorClassifier().mapStorageError(operation, err)
}

// isDomainError reports whether err already carries a domain sentinel
func isDomainError(err error) bool {
	return errs.ErrorCode(err) != errs.CodeInternalServer
}
