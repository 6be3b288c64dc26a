package model

import (
	"testing"
	"time"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestAccountConversion(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	account := &entity.Account{ID: 7, UserID: 3, Name: "Savings", Kind: entity.AccountSavings, Balance: 1250, CreatedAt: created}

	m := AccountFromEntity(account)
	assert.Equal(t, "savings", m.Kind)
	assert.Equal(t, account, m.ToEntity())
}

func TestTransactionConversion(t *testing.T) {
	local := time.Date(2024, 3, 1, 14, 0, 0, 0, time.FixedZone("X", 2*3600))
	m := &Transaction{ID: 9, AccountID: 7, Kind: "transfer_out", Amount: -500, BalanceAfter: 750, Note: "rent", CreatedAt: local}

	tx := m.ToEntity()
	assert.Equal(t, entity.KindTransferOut, tx.Kind)
	assert.Equal(t, int64(-500), tx.Amount)
	assert.Equal(t, time.UTC, tx.CreatedAt.Location())
	assert.True(t, tx.CreatedAt.Equal(local))
}

func TestUserConversion(t *testing.T) {
	user := &entity.User{ID: 1, Username: "alice", PasswordHash: "h", CreatedAt: time.Unix(0, 0).UTC()}
	assert.Equal(t, user, UserFromEntity(user).ToEntity())
}
