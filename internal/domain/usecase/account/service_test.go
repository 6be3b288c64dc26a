package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/memory"
	coremocks "github.com/amirhossein-jamali/personal-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService(t *testing.T) {
	ctx := context.Background()
	fixedTime := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*account.Service, *memory.Store, uint64) {
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Now().Return(fixedTime).Maybe()

		store := memory.NewStore(mockTime)
		user, err := entity.NewUser("alice", "hash", mockTime)
		require.NoError(t, err)
		require.NoError(t, store.GetUserRepository(ctx).Create(ctx, user))

		return account.NewAccountService(store, mockTime), store, user.ID
	}

	t.Run("Create and get", func(t *testing.T) {
		service, _, userID := setup(t)

		created, err := service.CreateAccount(ctx, userID, "Savings", "savings")
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, entity.AccountSavings, created.Kind)
		assert.Equal(t, int64(0), created.Balance)
		assert.Equal(t, fixedTime, created.CreatedAt)

		fetched, err := service.GetAccount(ctx, userID, "Savings")
		require.NoError(t, err)
		assert.Equal(t, created.ID, fetched.ID)
	})

	t.Run("Create failures", func(t *testing.T) {
		service, _, userID := setup(t)
		_, err := service.CreateAccount(ctx, userID, "Savings", "savings")
		require.NoError(t, err)

		testCases := []struct {
			name        string
			accountName string
			kind        string
			err         error
		}{
			{"Duplicate name", "Savings", "checking", errs.ErrDuplicateAccountName},
			{"Invalid kind", "Brokerage", "brokerage", errs.ErrInvalidAccountType},
			{"Blank name", "  ", "checking", errs.ErrInvalidAccountName},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := service.CreateAccount(ctx, userID, tc.accountName, tc.kind)
				assert.ErrorIs(t, err, tc.err)
			})
		}
	})

	t.Run("Get missing account", func(t *testing.T) {
		service, _, userID := setup(t)
		_, err := service.GetAccount(ctx, userID, "Nope")
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)

		_, err = service.GetAccount(ctx, 0, "Nope")
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})

	t.Run("List in creation order", func(t *testing.T) {
		service, _, userID := setup(t)
		for _, name := range []string{"Zeta", "Alpha", "Mid"} {
			_, err := service.CreateAccount(ctx, userID, name, "checking")
			require.NoError(t, err)
		}

		accounts, err := service.ListAccounts(ctx, userID)
		require.NoError(t, err)
		require.Len(t, accounts, 3)
		assert.Equal(t, "Zeta", accounts[0].Name)
		assert.Equal(t, "Alpha", accounts[1].Name)
		assert.Equal(t, "Mid", accounts[2].Name)
	})

	t.Run("Other users see nothing", func(t *testing.T) {
		service, _, userID := setup(t)
		_, err := service.CreateAccount(ctx, userID, "Savings", "savings")
		require.NoError(t, err)

		_, err = service.GetAccount(ctx, userID+1, "Savings")
		assert.ErrorIs(t, err, errs.ErrAccountNotFound)

		accounts, err := service.ListAccounts(ctx, userID+1)
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})
}
