package memory

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// UserRepository implements persistence.UserRepository on top of Store
type UserRepository struct {
	store *Store
}

// Create stores a new user and assigns its ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return r.store.within(ctx, func(u *unit) error {
		if _, exists := r.store.usersByName[user.Username]; exists {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateUser, user.Username)
		}

		r.store.nextUserID++
		user.ID = r.store.nextUserID

		stored := *user
		r.store.users[stored.ID] = &stored
		r.store.usersByName[stored.Username] = stored.ID

		u.record(func() {
			delete(r.store.users, stored.ID)
			delete(r.store.usersByName, stored.Username)
		})
		return nil
	})
}

// GetByUsername retrieves a user by login name
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var found *entity.User
	err := r.store.within(ctx, func(_ *unit) error {
		id, ok := r.store.usersByName[username]
		if !ok {
			return fmt.Errorf("%w: %q", errs.ErrUserNotFound, username)
		}
		copied := *r.store.users[id]
		found = &copied
		return nil
	})
	return found, err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var found *entity.User
	err := r.store.within(ctx, func(_ *unit) error {
		user, ok := r.store.users[id]
		if !ok {
			return fmt.Errorf("%w: id %d", errs.ErrUserNotFound, id)
		}
		copied := *user
		found = &copied
		return nil
	})
	return found, err
}

// Delete removes a user and cascades to its accounts and their transactions
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.within(ctx, func(u *unit) error {
		user, ok := r.store.users[id]
		if !ok {
			return fmt.Errorf("%w: id %d", errs.ErrUserNotFound, id)
		}

		for _, account := range r.store.accounts {
			if account.UserID == id {
				r.store.removeAccount(u, account)
			}
		}

		delete(r.store.users, id)
		delete(r.store.usersByName, user.Username)
		u.record(func() {
			r.store.users[id] = user
			r.store.usersByName[user.Username] = id
		})
		return nil
	})
}
