package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidRequest       = 4000
	CodeInvalidAmount        = 4001
	CodeInvalidAccountType   = 4002
	CodeInvalidAccountName   = 4003
	CodeInvalidUserID        = 4004
	CodeInvalidLimit         = 4005
	CodeSameAccountTransfer  = 4006
	CodeInvalidUsername      = 4007
	CodeWeakPassword         = 4008
	CodeInvalidCredentials   = 4010
	CodeAccountNotFound      = 4040
	CodeUserNotFound         = 4041
	CodeDuplicateAccountName = 4090
	CodeDuplicateUser        = 4091
	CodeInsufficientFunds    = 4220

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeStorageUnavailable = 5030
)

// Ledger error kinds
var (
	// ErrInvalidAmount is returned when an amount is malformed, non-positive where a
	// positive value is required, or out of range
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidAccountType is returned when an account kind is neither checking nor savings
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrDuplicateAccountName is returned when the owner already has an account with that name
	ErrDuplicateAccountName = errors.New("account name already exists")

	// ErrAccountNotFound is returned when the named account does not exist for the owner
	ErrAccountNotFound = errors.New("account not found")

	// ErrSameAccountTransfer is returned when source and destination of a transfer are equal
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrInsufficientFunds is returned when an operation would make a balance negative
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStorageUnavailable is returned when the persistent store cannot be reached or
	// keeps rejecting the unit of work. It is the only transient kind.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Supporting error kinds
var (
	// ErrAmountOverflow is returned when a balance change would overflow int64
	ErrAmountOverflow = fmt.Errorf("%w: amount out of range", ErrInvalidAmount)

	// ErrInvalidLimit is returned when a history limit is not a positive integer
	ErrInvalidLimit = fmt.Errorf("%w: limit must be a positive integer", ErrInvalidAmount)

	// ErrInvalidRequest is returned when a request body or argument list is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidNote is returned when a transaction note cannot be stored
	ErrInvalidNote = fmt.Errorf("%w: invalid note", ErrInvalidRequest)

	// ErrInvalidAccountName is returned when an account name is blank
	ErrInvalidAccountName = errors.New("account name cannot be empty")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrWriteConflict is returned by the store when a concurrent unit of work won a race.
	// Units failing with it are retried before surfacing ErrStorageUnavailable.
	ErrWriteConflict = errors.New("write conflict")

	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidUsername    = errors.New("username cannot be empty")
	ErrWeakPassword       = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrInvalidLimit):
		return CodeInvalidLimit
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidAccountType):
		return CodeInvalidAccountType
	case errors.Is(err, ErrInvalidAccountName):
		return CodeInvalidAccountName
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrSameAccountTransfer):
		return CodeSameAccountTransfer
	case errors.Is(err, ErrInvalidUsername):
		return CodeInvalidUsername
	case errors.Is(err, ErrWeakPassword):
		return CodeWeakPassword
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDuplicateAccountName):
		return CodeDuplicateAccountName
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrStorageUnavailable), errors.Is(err, ErrWriteConflict):
		return CodeStorageUnavailable
	default:
		return CodeInternalServer
	}
}

// IsTransient reports whether retrying the whole operation later may succeed
func IsTransient(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	AccountID uint64
	Balance   int64
	Requested int64
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds in account %d: balance %d cents, requested change %d cents",
		e.AccountID, e.Balance, e.Requested)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_funds",
		"account_id":      e.AccountID,
		"current_balance": e.Balance,
		"requested":       e.Requested,
		"error_code":      CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(accountID uint64, balance, requested int64) error {
	return &InsufficientFundsError{
		AccountID: accountID,
		Balance:   balance,
		Requested: requested,
	}
}

// StorageError wraps a driver-level failure. It matches ErrStorageUnavailable.
type StorageError struct {
	Operation string
	Err       error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrStorageUnavailable
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *StorageError) LogFields() map[string]any {
	fields := map[string]any{
		"error_type": "storage_unavailable",
		"operation":  e.Operation,
		"error_code": CodeStorageUnavailable,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}

// NewStorageError wraps err as a storage failure of the named operation
func NewStorageError(operation string, err error) error {
	return &StorageError{Operation: operation, Err: err}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsConflictError checks if the error reports an already existing resource
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateAccountName) || errors.Is(err, ErrDuplicateUser)
}

// IsValidationError checks if the error is caused by bad caller input
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidAccountType) ||
		errors.Is(err, ErrInvalidAccountName) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrSameAccountTransfer) ||
		errors.Is(err, ErrInvalidUsername) ||
		errors.Is(err, ErrWeakPassword) ||
		errors.Is(err, ErrInvalidRequest)
}
