package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
)

// TransactionKind represents the kind of ledger entry
type TransactionKind string

// Transaction kinds
const (
	KindDeposit     TransactionKind = "deposit"
	KindWithdraw    TransactionKind = "withdraw"
	KindTransferIn  TransactionKind = "transfer_in"
	KindTransferOut TransactionKind = "transfer_out"
)

// IsValid reports whether k is one of the known kinds
func (k TransactionKind) IsValid() bool {
	switch k {
	case KindDeposit, KindWithdraw, KindTransferIn, KindTransferOut:
		return true
	}
	return false
}

// IsCredit reports whether entries of this kind carry a positive amount
func (k TransactionKind) IsCredit() bool {
	return k == KindDeposit || k == KindTransferIn
}

// ValidateSignedAmount checks that amount is non-zero and its sign matches the kind
func (k TransactionKind) ValidateSignedAmount(amount int64) error {
	if !k.IsValid() {
		return fmt.Errorf("%w: unknown transaction kind %q", errs.ErrInvalidAmount, k)
	}
	if amount == 0 {
		return fmt.Errorf("%w: amount must not be zero", errs.ErrInvalidAmount)
	}
	if k.IsCredit() != (amount > 0) {
		return fmt.Errorf("%w: sign of %d does not match %s", errs.ErrInvalidAmount, amount, k)
	}
	return nil
}

// Transaction is an immutable record of one balance change
type Transaction struct {
	ID           uint64          // Monotonic identifier, defines history order
	AccountID    uint64          // Account whose balance changed
	Kind         TransactionKind // deposit, withdraw, transfer_in or transfer_out
	Amount       int64           // Signed change in cents
	BalanceAfter int64           // Account balance right after this entry, in cents
	Note         string
	CreatedAt    time.Time // UTC
}

// NewTransaction creates a ledger entry, validating the kind/sign pairing
func NewTransaction(
	accountID uint64,
	kind TransactionKind,
	amount int64,
	balanceAfter int64,
	note string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if err := kind.ValidateSignedAmount(amount); err != nil {
		return nil, err
	}
	if err := ValidateNote(note); err != nil {
		return nil, err
	}
	if balanceAfter < 0 {
		return nil, NewNegativeBalanceError(accountID, balanceAfter-amount, amount)
	}

	return &Transaction{
		AccountID:    accountID,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Note:         note,
		CreatedAt:    timeProvider.Now().UTC(),
	}, nil
}

// NewNegativeBalanceError reports a change that would take a balance below zero
func NewNegativeBalanceError(accountID uint64, balance, change int64) error {
	return errs.NewInsufficientFundsError(accountID, balance, change)
}

// ApplyChange returns balance+change, rejecting overflow and negative results
func ApplyChange(accountID uint64, balance, change int64) (int64, error) {
	next := balance + change
	if (change > 0 && next < balance) || (change < 0 && next > balance) {
		return 0, fmt.Errorf("%w: balance %d with change %d", errs.ErrAmountOverflow, balance, change)
	}
	if next < 0 {
		return 0, NewNegativeBalanceError(accountID, balance, change)
	}
	return next, nil
}
