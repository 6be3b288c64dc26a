package model

import (
	"time"
)

// Account represents the database model for accounts
type Account struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_accounts_user_name,priority:1"`
	Name      string    `gorm:"not null;size:64;uniqueIndex:idx_accounts_user_name,priority:2"`
	Kind      string    `gorm:"not null;size:16;check:chk_accounts_kind,kind IN ('checking','savings')"`
	Balance   int64     `gorm:"not null;default:0;check:chk_accounts_balance,balance >= 0"` // Balance in cents
	CreatedAt time.Time `gorm:"not null"`

	Transactions []Transaction `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
