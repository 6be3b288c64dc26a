package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/persistence"
)

// unitKey is the context key under which the active unit is stored
type unitKey struct{}

// unit is an open unit of work. While it is open it owns Store.lock, so every
// operation in the unit sees a stable view and no other unit can interleave.
type unit struct {
	undo   []func()
	closed bool
}

func (u *unit) record(fn func()) {
	u.undo = append(u.undo, fn)
}

func (u *unit) rollback() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
}

type accountKey struct {
	userID uint64
	name   string
}

// Store is an in-process implementation of the persistence ports.
// A single lock serializes units; rollback replays an undo journal.
// Waiting for the lock gives up when the caller's context is done.
type Store struct {
	lock         chan struct{} // holds one token while a unit or step runs
	timeProvider coreport.TimeProvider

	users          map[uint64]*entity.User
	usersByName    map[string]uint64
	accounts       map[uint64]*entity.Account
	accountsByName map[accountKey]uint64
	transactions   map[uint64][]*entity.Transaction // per account, ascending ID

	nextUserID        uint64
	nextAccountID     uint64
	nextTransactionID uint64
}

var _ persistence.UnitOfWork = (*Store)(nil)

// NewStore creates an empty Store
func NewStore(timeProvider coreport.TimeProvider) *Store {
	return &Store{
		lock:           make(chan struct{}, 1),
		timeProvider:   timeProvider,
		users:          make(map[uint64]*entity.User),
		usersByName:    make(map[string]uint64),
		accounts:       make(map[uint64]*entity.Account),
		accountsByName: make(map[accountKey]uint64),
		transactions:   make(map[uint64][]*entity.Transaction),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.lock
}

func activeUnit(ctx context.Context) *unit {
	u, ok := ctx.Value(unitKey{}).(*unit)
	if !ok || u == nil || u.closed {
		return nil
	}
	return u
}

// Begin opens a unit. Units do not nest; use Execute to join an open one.
func (s *Store) Begin(ctx context.Context) (context.Context, error) {
	if activeUnit(ctx) != nil {
		return ctx, errors.New("memory store: a unit is already active in this context")
	}
	if err := s.acquire(ctx); err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, unitKey{}, &unit{}), nil
}

// Commit makes the unit's changes permanent and releases the store
func (s *Store) Commit(ctx context.Context) error {
	u := activeUnit(ctx)
	if u == nil {
		return fmt.Errorf("no transaction found in context")
	}
	u.undo = nil
	u.closed = true
	s.release()
	return nil
}

// Rollback undoes the unit's changes and releases the store.
// Rolling back an already closed unit is a no-op.
func (s *Store) Rollback(ctx context.Context) error {
	if u, ok := ctx.Value(unitKey{}).(*unit); ok && u != nil && u.closed {
		return nil
	}
	u := activeUnit(ctx)
	if u == nil {
		return fmt.Errorf("no transaction found in context")
	}
	u.rollback()
	u.closed = true
	s.release()
	return nil
}

// Execute runs fn inside a unit, joining the unit already bound to ctx if any.
// The in-process store never reports write conflicts, so nothing is retried.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if activeUnit(ctx) != nil {
		return fn(ctx)
	}

	txCtx, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = s.Rollback(txCtx)
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		_ = s.Rollback(txCtx)
		return err
	}

	return s.Commit(txCtx)
}

// within runs fn against the unit in ctx, or as its own atomic step otherwise
func (s *Store) within(ctx context.Context, fn func(u *unit) error) error {
	if u := activeUnit(ctx); u != nil {
		return fn(u)
	}

	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	u := &unit{}
	if err := fn(u); err != nil {
		u.rollback()
		return err
	}
	return nil
}

// GetLedgerStore returns a ledger store bound to the unit in ctx, if any
func (s *Store) GetLedgerStore(_ context.Context) persistence.LedgerStore {
	return &LedgerStore{store: s}
}

// GetAccountRepository returns an account repository bound to the unit in ctx, if any
func (s *Store) GetAccountRepository(_ context.Context) persistence.AccountRepository {
	return &AccountRepository{store: s}
}

// GetUserRepository returns a user repository bound to the unit in ctx, if any
func (s *Store) GetUserRepository(_ context.Context) persistence.UserRepository {
	return &UserRepository{store: s}
}

// Ping always succeeds; it lets the store stand in for a database in health checks
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// removeAccount deletes an account and its history, recording the inverse in u
func (s *Store) removeAccount(u *unit, account *entity.Account) {
	key := accountKey{userID: account.UserID, name: account.Name}
	history := s.transactions[account.ID]

	delete(s.accounts, account.ID)
	delete(s.accountsByName, key)
	delete(s.transactions, account.ID)

	u.record(func() {
		s.accounts[account.ID] = account
		s.accountsByName[key] = account.ID
		if history != nil {
			s.transactions[account.ID] = history
		}
	})
}
