package model

import (
	"time"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID    uint64    `gorm:"not null"`
	Kind         string    `gorm:"not null;size:16;check:chk_transactions_kind,kind IN ('deposit','withdraw','transfer_in','transfer_out')"`
	Amount       int64     `gorm:"not null;check:chk_transactions_amount,amount <> 0"` // Signed change in cents
	BalanceAfter int64     `gorm:"not null;check:chk_transactions_balance_after,balance_after >= 0"`
	Note         string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
