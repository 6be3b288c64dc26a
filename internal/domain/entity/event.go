package entity

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// EventType names a committed ledger operation
type EventType string

// Event types
const (
	EventDeposited   EventType = "ledger.deposited"
	EventWithdrawn   EventType = "ledger.withdrawn"
	EventTransferred EventType = "ledger.transferred"
)

// LedgerEvent is emitted after a money movement has been committed.
// Amounts are carried as exact decimals in major units.
type LedgerEvent struct {
	ID            string          `json:"id"`
	Type          EventType       `json:"type"`
	UserID        uint64          `json:"userId"`
	Account       string          `json:"account"`
	TargetAccount string          `json:"targetAccount,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	TargetBalance decimal.Decimal `json:"targetBalance,omitempty"`
	Note          string          `json:"note,omitempty"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// CentsToDecimal converts minor units to an exact decimal amount
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -MaxDecimalPlaces)
}

// NewLedgerEvent builds an event with a time-ordered unique ID
func NewLedgerEvent(eventType EventType, userID uint64, account string, amount, balance int64, note string, at time.Time) *LedgerEvent {
	return &LedgerEvent{
		ID:         ulid.MustNew(ulid.Timestamp(at), rand.Reader).String(),
		Type:       eventType,
		UserID:     userID,
		Account:    account,
		Amount:     CentsToDecimal(amount),
		Balance:    CentsToDecimal(balance),
		Note:       note,
		OccurredAt: at.UTC(),
	}
}

// WithTarget records the destination side of a transfer
func (e *LedgerEvent) WithTarget(account string, balance int64) *LedgerEvent {
	e.TargetAccount = account
	e.TargetBalance = CentsToDecimal(balance)
	return e
}
