package messaging

import (
	"context"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

// Publisher delivers committed ledger events to downstream consumers.
// Publishing happens after commit, so a failure never undoes an operation.
type Publisher interface {
	Publish(ctx context.Context, event *entity.LedgerEvent) error
	Close() error
}
