package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/events"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/memory"
	mockcore "github.com/amirhossein-jamali/personal-ledger/mocks/port/core"
	mockmessaging "github.com/amirhossein-jamali/personal-ledger/mocks/port/messaging"
)

func setupPublishing(t *testing.T, publisher *mockmessaging.MockPublisher) (*events.PublishingTransactionService, *observer.ObservedLogs, uint64) {
	t.Helper()

	mockTime := mockcore.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)).Maybe()

	store := memory.NewStore(mockTime)
	accounts := account.NewAccountService(store, mockTime)

	// Users are normally created by signup; the account service only needs an existing owner
	owner := &entity.User{Username: "alice", PasswordHash: "x", CreatedAt: mockTime.Now()}
	require.NoError(t, store.GetUserRepository(context.Background()).Create(context.Background(), owner))
	_, err := accounts.CreateAccount(context.Background(), owner.ID, "Checking", "checking")
	require.NoError(t, err)
	_, err = accounts.CreateAccount(context.Background(), owner.ID, "Savings", "savings")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	service := events.NewPublishingTransactionService(
		transaction.NewTransactionService(store),
		publisher,
		mockTime,
		logger.NewZapLoggerFrom(zap.New(core)),
	)
	return service, logs, owner.ID
}

func TestPublishingTransactionService(t *testing.T) {
	ctx := context.Background()

	t.Run("Deposit publishes after commit", func(t *testing.T) {
		publisher := mockmessaging.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e *entity.LedgerEvent) bool {
			return e.Type == entity.EventDeposited && e.Account == "Checking" && e.Balance.String() == "12.5"
		})).Return(nil).Once()

		service, _, userID := setupPublishing(t, publisher)

		balance, err := service.Deposit(ctx, userID, "Checking", 1250, "gift")
		require.NoError(t, err)
		assert.Equal(t, int64(1250), balance)
	})

	t.Run("Transfer event carries both sides", func(t *testing.T) {
		publisher := mockmessaging.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
		publisher.EXPECT().Publish(mock.Anything, mock.MatchedBy(func(e *entity.LedgerEvent) bool {
			return e.Type == entity.EventTransferred &&
				e.Account == "Checking" && e.TargetAccount == "Savings" &&
				e.Balance.String() == "7" && e.TargetBalance.String() == "3"
		})).Return(nil).Once()

		service, _, userID := setupPublishing(t, publisher)
		_, err := service.Deposit(ctx, userID, "Checking", 1000, "")
		require.NoError(t, err)

		_, err = service.Transfer(ctx, userID, "Checking", "Savings", 300, "")
		require.NoError(t, err)
	})

	t.Run("Failed operations publish nothing", func(t *testing.T) {
		publisher := mockmessaging.NewMockPublisher(t)
		service, _, userID := setupPublishing(t, publisher)

		_, err := service.Withdraw(ctx, userID, "Checking", 1, "")
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Publish failure is logged, not returned", func(t *testing.T) {
		publisher := mockmessaging.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

		service, logs, userID := setupPublishing(t, publisher)

		balance, err := service.Deposit(ctx, userID, "Checking", 500, "")
		require.NoError(t, err)
		assert.Equal(t, int64(500), balance)
		assert.Equal(t, 1, logs.FilterMessage("Failed to publish ledger event").Len())
	})

	t.Run("History passes through", func(t *testing.T) {
		publisher := mockmessaging.NewMockPublisher(t)
		publisher.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Once()
		service, _, userID := setupPublishing(t, publisher)
		_, err := service.Deposit(ctx, userID, "Checking", 500, "")
		require.NoError(t, err)

		history, err := service.GetHistory(ctx, userID, "Checking", 0)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})
}

func TestNoopPublisher(t *testing.T) {
	p := events.NewNoopPublisher()
	assert.NoError(t, p.Publish(context.Background(), &entity.LedgerEvent{}))
	assert.NoError(t, p.Close())
}
