package events

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
)

// PublishingTransactionService publishes an event for every committed money movement.
// The wrapped service has already committed when an event is built, so a publish
// failure is logged and never turned into an operation error.
type PublishingTransactionService struct {
	next         usecase.TransactionUseCase
	publisher    messaging.Publisher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.TransactionUseCase = (*PublishingTransactionService)(nil)

// NewPublishingTransactionService wraps next
func NewPublishingTransactionService(
	next usecase.TransactionUseCase,
	publisher messaging.Publisher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *PublishingTransactionService {
	return &PublishingTransactionService{
		next:         next,
		publisher:    publisher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Deposit credits the account and publishes ledger.deposited
func (s *PublishingTransactionService) Deposit(ctx context.Context, userID uint64, accountName string, amount int64, note string) (int64, error) {
	balance, err := s.next.Deposit(ctx, userID, accountName, amount, note)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, entity.NewLedgerEvent(entity.EventDeposited, userID, accountName, amount, balance, note, s.timeProvider.Now()))
	return balance, nil
}

// Withdraw debits the account and publishes ledger.withdrawn
func (s *PublishingTransactionService) Withdraw(ctx context.Context, userID uint64, accountName string, amount int64, note string) (int64, error) {
	balance, err := s.next.Withdraw(ctx, userID, accountName, amount, note)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, entity.NewLedgerEvent(entity.EventWithdrawn, userID, accountName, amount, balance, note, s.timeProvider.Now()))
	return balance, nil
}

// Transfer moves money and publishes ledger.transferred carrying both balances
func (s *PublishingTransactionService) Transfer(ctx context.Context, userID uint64, from, to string, amount int64, note string) (*usecase.TransferResult, error) {
	result, err := s.next.Transfer(ctx, userID, from, to, amount, note)
	if err != nil {
		return nil, err
	}

	event := entity.NewLedgerEvent(entity.EventTransferred, userID, from, amount, result.FromBalance, note, s.timeProvider.Now())
	s.publish(ctx, event.WithTarget(to, result.ToBalance))
	return result, nil
}

// GetHistory is read-only and publishes nothing
func (s *PublishingTransactionService) GetHistory(ctx context.Context, userID uint64, accountName string, limit int) ([]*entity.Transaction, error) {
	return s.next.GetHistory(ctx, userID, accountName, limit)
}

func (s *PublishingTransactionService) publish(ctx context.Context, event *entity.LedgerEvent) {
	// Delivery outlives the request
	ctx = context.WithoutCancel(ctx)

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish ledger event", map[string]any{
			"event_id":   event.ID,
			"event_type": string(event.Type),
			"user_id":    event.UserID,
			"error":      err.Error(),
		})
	}
}
