// Package bootstrap assembles the ledger services from configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/messaging"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/account"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/personal-ledger/internal/domain/usecase/user"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/crypto"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/events"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/events/kafka"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/memory"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

// Driver names accepted in database.driver
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Pinger reports whether the store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds the wired use cases and the resources behind them
type App struct {
	Users        usecase.UserUseCase
	Accounts     usecase.AccountUseCase
	Transactions usecase.TransactionUseCase
	Store        Pinger

	manager   *database.Manager
	publisher messaging.Publisher
	logger    coreport.Logger
}

// Options tune New
type Options struct {
	// Migrate runs schema migrations after connecting to PostgreSQL
	Migrate bool
}

// New connects the configured store and builds every use case on top of it
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger, timeProvider coreport.TimeProvider, opts Options) (*App, error) {
	app := &App{logger: logger}

	var uow persistence.UnitOfWork
	switch cfg.Database.Driver {
	case DriverMemory:
		logger.Warn("Using in-memory store, data is lost on exit", nil)
		store := memory.NewStore(timeProvider)
		uow = store
		app.Store = store

	case DriverPostgres:
		manager := database.NewManager(database.FromAppConfig(cfg), logger, timeProvider)
		if err := manager.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		app.manager = manager

		if opts.Migrate {
			if err := manager.Migrate(ctx); err != nil {
				_ = app.Close()
				return nil, fmt.Errorf("migrate database: %w", err)
			}
		}

		dbUow, err := manager.CreateUnitOfWork(database.RetryConfigFrom(cfg.Transaction))
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		uow = dbUow
		app.Store = manager

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Events.Enabled {
		logger.Info("Publishing ledger events", map[string]any{
			"brokers": cfg.Events.Brokers,
			"topic":   cfg.Events.Topic,
		})
		app.publisher = kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic, cfg.Events.WriteTimeout)
	} else {
		app.publisher = events.NewNoopPublisher()
	}

	hasher := crypto.NewPBKDF2Hasher(cfg.Auth.PBKDF2Iterations)
	app.Users = user.NewUserService(uow, hasher, timeProvider, cfg.Auth.MinPasswordLength)
	app.Accounts = account.NewAccountService(uow, timeProvider)
	app.Transactions = events.NewPublishingTransactionService(
		transaction.NewTransactionService(uow),
		app.publisher,
		timeProvider,
		logger,
	)

	return app, nil
}

// Migrate runs schema migrations; the memory store has no schema
func (a *App) Migrate(ctx context.Context) error {
	if a.manager == nil {
		return nil
	}
	return a.manager.Migrate(ctx)
}

// Close flushes the publisher and closes the connection pool
func (a *App) Close() error {
	var errList []error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close publisher: %w", err))
		}
	}
	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errList...)
}
