package transaction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// History limits
const (
	// HistoryLimitUnspecified asks GetHistory for DefaultHistoryLimit entries
	HistoryLimitUnspecified = 0
	DefaultHistoryLimit     = 20
	MinHistoryLimit         = 1
	MaxHistoryLimit         = 200
)

// TransactionValidator checks money movement requests before any storage access
type TransactionValidator struct{}

// NewTransactionValidator creates a new TransactionValidator
func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{}
}

// ValidateMovement validates a deposit or withdrawal and returns the account
// name in the form used for lookups
func (v *TransactionValidator) ValidateMovement(userID uint64, accountName string, amount int64, note string) (string, error) {
	if userID == 0 {
		return "", errs.ErrInvalidUserID
	}
	accountName = entity.LookupName(accountName)
	if accountName == "" {
		return "", errs.ErrInvalidAccountName
	}
	if err := v.validateAmount(amount); err != nil {
		return "", err
	}
	if err := entity.ValidateNote(note); err != nil {
		return "", err
	}
	return accountName, nil
}

// ValidateTransfer validates a transfer and returns both names in lookup form.
// Equal names fail before any lookup.
func (v *TransactionValidator) ValidateTransfer(userID uint64, from, to string, amount int64, note string) (string, string, error) {
	from, err := v.ValidateMovement(userID, from, amount, note)
	if err != nil {
		return "", "", err
	}
	to = entity.LookupName(to)
	if to == "" {
		return "", "", errs.ErrInvalidAccountName
	}
	if from == to {
		return "", "", errs.ErrSameAccountTransfer
	}
	return from, to, nil
}

// validateAmount checks that the amount is strictly positive
func (v *TransactionValidator) validateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", errs.ErrInvalidAmount, amount)
	}
	return nil
}

// ClampHistoryLimit maps a requested limit into [MinHistoryLimit, MaxHistoryLimit].
// HistoryLimitUnspecified yields DefaultHistoryLimit.
func ClampHistoryLimit(limit int) int {
	switch {
	case limit == HistoryLimitUnspecified:
		return DefaultHistoryLimit
	case limit < MinHistoryLimit:
		return MinHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	default:
		return limit
	}
}

// ParseHistoryLimit converts user input into a history limit. Empty input means
// DefaultHistoryLimit; anything but a positive integer fails with ErrInvalidLimit.
func ParseHistoryLimit(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(text)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(text, "-") {
			return MaxHistoryLimit, nil
		}
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidLimit, text)
	}
	if limit < MinHistoryLimit {
		return 0, fmt.Errorf("%w: %d is not positive", errs.ErrInvalidLimit, limit)
	}
	return ClampHistoryLimit(limit), nil
}
