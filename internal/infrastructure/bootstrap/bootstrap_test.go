package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/events"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: DriverMemory},
		Auth:     config.AuthConfig{PBKDF2Iterations: 1000, MinPasswordLength: 6},
	}
}

func TestNew_Memory(t *testing.T) {
	ctx := context.Background()
	app, err := New(ctx, memoryConfig(), logger.NewNoopLogger(), timeprovider.NewRealTimeProvider(), Options{Migrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	assert.IsType(t, &events.PublishingTransactionService{}, app.Transactions)
	require.NoError(t, app.Store.Ping(ctx))
	require.NoError(t, app.Migrate(ctx))

	u, err := app.Users.Signup(ctx, "alice", "secret-pass")
	require.NoError(t, err)

	balance, err := app.Transactions.Deposit(ctx, u.ID, entity.DefaultAccountName, 2500, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)

	accounts, err := app.Accounts.ListAccounts(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, int64(2500), accounts[0].Balance)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.Driver = "sqlite"

	_, err := New(context.Background(), cfg, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider(), Options{})
	assert.ErrorContains(t, err, "unsupported database driver")
}
