package database

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/crypto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

type ledgerFixture struct {
	uow          *UnitOfWork
	users        *user.Service
	accounts     *account.Service
	transactions *transaction.Service
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	testDB := NewTestDBManager(t, logger.NewNoopLogger())
	// the retry settings and isolation level the configs ship with
	uow, err := testDB.Manager.CreateUnitOfWork(RetryConfigFrom(config.TransactionConfig{
		MaxRetries:         10,
		RetryInterval:      20 * time.Millisecond,
		MaxRetryInterval:   time.Second,
		RetryJitterPercent: 20,
	}))
	require.NoError(t, err)

	return &ledgerFixture{
		uow:          uow,
		users:        user.NewUserService(uow, crypto.NewPBKDF2Hasher(1000), testDB.TimeProvider, 6),
		accounts:     account.NewAccountService(uow, testDB.TimeProvider),
		transactions: transaction.NewTransactionService(uow),
	}
}

func TestPostgresMigrationIsIdempotent(t *testing.T) {
	testDB := NewTestDBManager(t, logger.NewNoopLogger())
	ctx := context.Background()

	require.NoError(t, testDB.Manager.Migrate(ctx))

	mgr := migration.NewMigrationManager(testDB.Manager.DB(), logger.NewNoopLogger(), testDB.TimeProvider)
	version, err := mgr.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, mgr.CurrentSchemaVersion(), version)
}

func TestPostgresLedger(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	alice, err := f.users.Signup(ctx, "alice", "password1")
	require.NoError(t, err)

	_, err = f.users.Signup(ctx, "alice", "password2")
	assert.ErrorIs(t, err, errs.ErrDuplicateUser)

	_, err = f.accounts.CreateAccount(ctx, alice.ID, "Savings", "savings")
	require.NoError(t, err)
	_, err = f.accounts.CreateAccount(ctx, alice.ID, "Savings", "checking")
	assert.ErrorIs(t, err, errs.ErrDuplicateAccountName)

	balance, err := f.transactions.Deposit(ctx, alice.ID, entity.DefaultAccountName, 10000, "salary")
	require.NoError(t, err)
	assert.Equal(t, int64(10000), balance)

	_, err = f.transactions.Withdraw(ctx, alice.ID, entity.DefaultAccountName, 10001, "")
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

	result, err := f.transactions.Transfer(ctx, alice.ID, entity.DefaultAccountName, "Savings", 2500, "save")
	require.NoError(t, err)
	assert.Equal(t, int64(7500), result.FromBalance)
	assert.Equal(t, int64(2500), result.ToBalance)

	_, err = f.transactions.Transfer(ctx, alice.ID, "Savings", entity.DefaultAccountName, 9999, "")
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

	history, err := f.transactions.GetHistory(ctx, alice.ID, entity.DefaultAccountName, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.KindTransferOut, history[0].Kind)
	assert.Equal(t, int64(-2500), history[0].Amount)
	assert.Equal(t, entity.KindDeposit, history[1].Kind)
	assert.Greater(t, history[0].ID, history[1].ID)

	savings, err := f.accounts.GetAccount(ctx, alice.ID, "Savings")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), savings.Balance)
}

func TestPostgresFailedUnitLeavesNoTrace(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	alice, err := f.users.Signup(ctx, "alice", "password1")
	require.NoError(t, err)
	checking, err := f.accounts.GetAccount(ctx, alice.ID, entity.DefaultAccountName)
	require.NoError(t, err)

	err = f.uow.Execute(ctx, func(ctx context.Context) error {
		ledger := f.uow.GetLedgerStore(ctx)
		if _, _, err := ledger.ApplyLedgerEntry(ctx, checking.ID, entity.KindDeposit, 500, ""); err != nil {
			return err
		}
		_, _, err := ledger.ApplyLedgerEntry(ctx, checking.ID, entity.KindWithdraw, -501, "")
		return err
	})
	require.ErrorIs(t, err, errs.ErrInsufficientFunds)

	balance, err := f.uow.GetLedgerStore(ctx).GetAccountBalance(ctx, checking.ID)
	require.NoError(t, err)
	assert.Zero(t, balance)

	history, err := f.uow.GetLedgerStore(ctx).ListTransactions(ctx, checking.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPostgresConcurrentTransfers(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	alice, err := f.users.Signup(ctx, "alice", "password1")
	require.NoError(t, err)
	_, err = f.accounts.CreateAccount(ctx, alice.ID, "Savings", "savings")
	require.NoError(t, err)
	_, err = f.transactions.Deposit(ctx, alice.ID, entity.DefaultAccountName, 5000, "")
	require.NoError(t, err)
	_, err = f.transactions.Deposit(ctx, alice.ID, "Savings", 5000, "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			from, to := entity.DefaultAccountName, "Savings"
			if i%2 == 1 {
				from, to = to, from
			}
			_, err := f.transactions.Transfer(ctx, alice.ID, from, to, 100, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	accounts, err := f.accounts.ListAccounts(ctx, alice.ID)
	require.NoError(t, err)
	var total int64
	for _, a := range accounts {
		total += a.Balance
	}
	assert.Equal(t, int64(10000), total)
}

func TestPostgresConcurrentDeposits(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	alice, err := f.users.Signup(ctx, "alice", "password1")
	require.NoError(t, err)

	const workers = 50
	const amount = int64(125)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.transactions.Deposit(ctx, alice.ID, entity.DefaultAccountName, amount, "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	checking, err := f.accounts.GetAccount(ctx, alice.ID, entity.DefaultAccountName)
	require.NoError(t, err)
	assert.Equal(t, workers*amount, checking.Balance)

	history, err := f.transactions.GetHistory(ctx, alice.ID, entity.DefaultAccountName, transaction.MaxHistoryLimit)
	require.NoError(t, err)
	assert.Len(t, history, workers)
}

func TestPostgresRejectedValuesAreInputErrors(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	alice, err := f.users.Signup(ctx, "alice", "password1")
	require.NoError(t, err)

	// bypasses entity validation so the column limit is what rejects it
	long := &entity.Account{
		UserID:    alice.ID,
		Name:      strings.Repeat("x", entity.MaxNameLength+1),
		Kind:      entity.AccountSavings,
		CreatedAt: time.Now().UTC(),
	}
	err = f.uow.Execute(ctx, func(ctx context.Context) error {
		return f.uow.GetAccountRepository(ctx).Create(ctx, long)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	assert.False(t, errs.IsTransient(err))

	_, err = f.accounts.CreateAccount(ctx, alice.ID, strings.Repeat("x", entity.MaxNameLength+1), "savings")
	assert.ErrorIs(t, err, errs.ErrInvalidAccountName)

	_, err = f.transactions.Deposit(ctx, alice.ID, entity.DefaultAccountName, 100, "bad\xff")
	assert.ErrorIs(t, err, errs.ErrInvalidNote)
}
