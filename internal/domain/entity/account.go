package entity

import (
	"fmt"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
)

// AccountKind represents the kind of an account
type AccountKind string

// Account kinds
const (
	AccountChecking AccountKind = "checking"
	AccountSavings  AccountKind = "savings"
)

// DefaultAccountName is the account every user receives at signup
const DefaultAccountName = "Checking"

// ParseAccountKind validates a textual account kind. Matching is case-insensitive.
func ParseAccountKind(kind string) (AccountKind, error) {
	switch AccountKind(strings.ToLower(strings.TrimSpace(kind))) {
	case AccountChecking:
		return AccountChecking, nil
	case AccountSavings:
		return AccountSavings, nil
	default:
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidAccountType, kind)
	}
}

// Account is a named balance owned by one user
type Account struct {
	ID        uint64      // Unique identifier for the account
	UserID    uint64      // Owner of the account
	Name      string      // Unique per owner
	Kind      AccountKind // checking or savings
	Balance   int64       // Balance in cents, never negative
	CreatedAt time.Time
}

// NewAccount creates an empty account for the given owner
func NewAccount(userID uint64, name string, kind string, timeProvider coreport.TimeProvider) (*Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	name, err := NormalizeAccountName(name)
	if err != nil {
		return nil, err
	}

	accountKind, err := ParseAccountKind(kind)
	if err != nil {
		return nil, err
	}

	return &Account{
		UserID:    userID,
		Name:      name,
		Kind:      accountKind,
		Balance:   0,
		CreatedAt: timeProvider.Now().UTC(),
	}, nil
}

// FormattedBalance returns the balance as a decimal string with 2 places
func (a *Account) FormattedBalance() string {
	return FormatAmount(a.Balance)
}
