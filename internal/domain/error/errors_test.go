package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInsufficientFunds.Error() != "insufficient funds" {
		t.Errorf("ErrInsufficientFunds has unexpected message: %s", ErrInsufficientFunds.Error())
	}
	if ErrInvalidAmount.Error() != "invalid amount" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
	if !errors.Is(ErrAmountOverflow, ErrInvalidAmount) {
		t.Errorf("ErrAmountOverflow should match ErrInvalidAmount")
	}
	if !errors.Is(ErrInvalidLimit, ErrInvalidAmount) {
		t.Errorf("ErrInvalidLimit should match ErrInvalidAmount")
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientFunds", ErrInsufficientFunds, 4220},
		{"InvalidAmount", ErrInvalidAmount, 4001},
		{"AmountOverflow", ErrAmountOverflow, 4001},
		{"InvalidLimit", ErrInvalidLimit, 4005},
		{"InvalidRequest", ErrInvalidRequest, 4000},
		{"InvalidAccountType", ErrInvalidAccountType, 4002},
		{"SameAccountTransfer", ErrSameAccountTransfer, 4006},
		{"AccountNotFound", ErrAccountNotFound, 4040},
		{"DuplicateAccountName", ErrDuplicateAccountName, 4090},
		{"InvalidCredentials", ErrInvalidCredentials, 4010},
		{"StorageUnavailable", ErrStorageUnavailable, 5030},
		{"WriteConflict", ErrWriteConflict, 5030},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4004},
		{"TypedInsufficientFunds", NewInsufficientFundsError(1, 100, -200), 4220},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	err := NewInsufficientFundsError(7, 10000, -15000)

	expectedMsg := "insufficient funds in account 7: balance 10000 cents, requested change -15000 cents"
	if err.Error() != expectedMsg {
		t.Errorf("Error() = %s, want %s", err.Error(), expectedMsg)
	}
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("errors.Is(err, ErrInsufficientFunds) = false, want true")
	}
	if !IsInsufficientFundsError(fmt.Errorf("withdraw: %w", err)) {
		t.Errorf("IsInsufficientFundsError should see through wrapping")
	}

	var typed *InsufficientFundsError
	if !errors.As(err, &typed) {
		t.Fatalf("errors.As failed for InsufficientFundsError")
	}
	fields := typed.LogFields()
	if fields["account_id"] != uint64(7) || fields["current_balance"] != int64(10000) {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("apply ledger entry", cause)

	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("StorageError should match ErrStorageUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Errorf("StorageError should unwrap to its cause")
	}
	if !IsTransient(err) {
		t.Errorf("IsTransient(StorageError) = false, want true")
	}
	if IsTransient(ErrInsufficientFunds) {
		t.Errorf("IsTransient(ErrInsufficientFunds) = true, want false")
	}
	if fields := err.(*StorageError).LogFields(); fields["error"] != "connection refused" {
		t.Errorf("unexpected log fields: %v", fields)
	}
}

func TestErrorClassHelpers(t *testing.T) {
	if !IsNotFoundError(ErrAccountNotFound) || !IsNotFoundError(ErrUserNotFound) {
		t.Errorf("IsNotFoundError should match account and user not found")
	}
	if !IsConflictError(fmt.Errorf("create: %w", ErrDuplicateAccountName)) {
		t.Errorf("IsConflictError should match a wrapped duplicate account name")
	}
	if !IsValidationError(ErrInvalidLimit) {
		t.Errorf("IsValidationError should match ErrInvalidLimit")
	}
	if IsValidationError(ErrStorageUnavailable) {
		t.Errorf("IsValidationError should not match ErrStorageUnavailable")
	}
}
