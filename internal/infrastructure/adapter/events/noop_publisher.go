package events

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/messaging"
)

// NoopPublisher drops every event; used when publishing is disabled
type NoopPublisher struct{}

var _ messaging.Publisher = NoopPublisher{}

// NewNoopPublisher creates a new NoopPublisher
func NewNoopPublisher() messaging.Publisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, *entity.LedgerEvent) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }
