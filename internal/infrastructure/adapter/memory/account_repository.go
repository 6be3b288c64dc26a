package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// AccountRepository implements persistence.AccountRepository on top of Store
type AccountRepository struct {
	store *Store
}

// Create stores a new account and assigns its ID
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.store.within(ctx, func(u *unit) error {
		if _, ok := r.store.users[account.UserID]; !ok {
			return fmt.Errorf("%w: id %d", errs.ErrUserNotFound, account.UserID)
		}

		key := accountKey{userID: account.UserID, name: account.Name}
		if _, exists := r.store.accountsByName[key]; exists {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateAccountName, account.Name)
		}

		r.store.nextAccountID++
		account.ID = r.store.nextAccountID

		stored := *account
		r.store.accounts[stored.ID] = &stored
		r.store.accountsByName[key] = stored.ID

		u.record(func() {
			delete(r.store.accounts, stored.ID)
			delete(r.store.accountsByName, key)
		})
		return nil
	})
}

// GetByName retrieves the account of userID with the given name
func (r *AccountRepository) GetByName(ctx context.Context, userID uint64, name string) (*entity.Account, error) {
	var found *entity.Account
	err := r.store.within(ctx, func(_ *unit) error {
		id, ok := r.store.accountsByName[accountKey{userID: userID, name: name}]
		if !ok {
			return fmt.Errorf("%w: %q", errs.ErrAccountNotFound, name)
		}
		copied := *r.store.accounts[id]
		found = &copied
		return nil
	})
	return found, err
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var found *entity.Account
	err := r.store.within(ctx, func(_ *unit) error {
		account, ok := r.store.accounts[id]
		if !ok {
			return fmt.Errorf("%w: id %d", errs.ErrAccountNotFound, id)
		}
		copied := *account
		found = &copied
		return nil
	})
	return found, err
}

// ListByUser returns every account of userID ordered by ID
func (r *AccountRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Account, error) {
	result := make([]*entity.Account, 0)
	err := r.store.within(ctx, func(_ *unit) error {
		for _, account := range r.store.accounts {
			if account.UserID == userID {
				copied := *account
				result = append(result, &copied)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, err
}

// Delete removes an account together with its transactions
func (r *AccountRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.within(ctx, func(u *unit) error {
		account, ok := r.store.accounts[id]
		if !ok {
			return fmt.Errorf("%w: id %d", errs.ErrAccountNotFound, id)
		}
		r.store.removeAccount(u, account)
		return nil
	})
}
