package model

import (
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// ToEntity converts the user model to a domain user
func (m *User) ToEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// UserFromEntity converts a domain user to its model
func UserFromEntity(u *entity.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

// ToEntity converts the account model to a domain account
func (m *Account) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Kind:      entity.AccountKind(m.Kind),
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// AccountFromEntity converts a domain account to its model
func AccountFromEntity(a *entity.Account) *Account {
	return &Account{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Kind:      string(a.Kind),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}

// ToEntity converts the transaction model to a domain transaction
func (m *Transaction) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:           m.ID,
		AccountID:    m.AccountID,
		Kind:         entity.TransactionKind(m.Kind),
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		Note:         m.Note,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// TransactionFromEntity converts a domain transaction to its model
func TransactionFromEntity(t *entity.Transaction) *Transaction {
	return &Transaction{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Kind:         string(t.Kind),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
	}
}
