package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// LedgerStore implements persistence.LedgerStore on top of Store
type LedgerStore struct {
	store *Store
}

// GetAccountBalance returns the current balance of an account in cents
func (l *LedgerStore) GetAccountBalance(ctx context.Context, accountID uint64) (int64, error) {
	var balance int64
	err := l.store.within(ctx, func(_ *unit) error {
		account, ok := l.store.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: id %d", errs.ErrAccountNotFound, accountID)
		}
		balance = account.Balance
		return nil
	})
	return balance, err
}

// ApplyLedgerEntry changes the balance and appends the matching transaction record
func (l *LedgerStore) ApplyLedgerEntry(
	ctx context.Context,
	accountID uint64,
	kind entity.TransactionKind,
	signedAmount int64,
	note string,
) (int64, *entity.Transaction, error) {
	var record *entity.Transaction

	err := l.store.within(ctx, func(u *unit) error {
		if err := kind.ValidateSignedAmount(signedAmount); err != nil {
			return err
		}

		account, ok := l.store.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: id %d", errs.ErrAccountNotFound, accountID)
		}

		next, err := entity.ApplyChange(accountID, account.Balance, signedAmount)
		if err != nil {
			return err
		}

		tx, err := entity.NewTransaction(accountID, kind, signedAmount, next, note, l.store.timeProvider)
		if err != nil {
			return err
		}
		l.store.nextTransactionID++
		tx.ID = l.store.nextTransactionID

		previous := account.Balance
		account.Balance = next
		l.store.transactions[accountID] = append(l.store.transactions[accountID], tx)

		u.record(func() {
			account.Balance = previous
			history := l.store.transactions[accountID]
			l.store.transactions[accountID] = history[:len(history)-1]
		})

		copied := *tx
		record = &copied
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	return record.BalanceAfter, record, nil
}

// LockAccounts checks that every account exists. Inside a unit the store is
// already held exclusively, so no per-row locking is needed.
func (l *LedgerStore) LockAccounts(ctx context.Context, accountIDs ...uint64) error {
	ids := append([]uint64(nil), accountIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return l.store.within(ctx, func(_ *unit) error {
		for _, id := range ids {
			if _, ok := l.store.accounts[id]; !ok {
				return fmt.Errorf("%w: id %d", errs.ErrAccountNotFound, id)
			}
		}
		return nil
	})
}

// ListTransactions returns at most limit entries, newest first
func (l *LedgerStore) ListTransactions(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error) {
	result := make([]*entity.Transaction, 0)
	if limit <= 0 {
		return result, nil
	}

	err := l.store.within(ctx, func(_ *unit) error {
		history := l.store.transactions[accountID]
		for i := len(history) - 1; i >= 0 && len(result) < limit; i-- {
			copied := *history[i]
			result = append(result, &copied)
		}
		return nil
	})
	return result, err
}
