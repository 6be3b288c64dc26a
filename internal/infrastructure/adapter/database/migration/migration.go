package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/model"
)

// step is one schema change. Steps are applied in slice order and each one is
// recorded in migration_versions inside the same database transaction.
type step struct {
	version     string
	description string
	apply       func(ctx context.Context, tx *gorm.DB) error
}

// MigrationManager manages database migrations
type MigrationManager struct {
	db               *gorm.DB
	logger           coreport.Logger
	timeProvider     coreport.TimeProvider
	advancedIndexMgr *AdvancedIndexManager
	steps            []step
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	m := &MigrationManager{
		db:               db,
		logger:           logger,
		timeProvider:     timeProvider,
		advancedIndexMgr: NewAdvancedIndexManager(db, logger),
	}
	m.steps = []step{
		{
			version:     "1.0.0",
			description: "users, accounts and transactions",
			apply: func(_ context.Context, tx *gorm.DB) error {
				// accounts reference users, transactions reference accounts
				return tx.AutoMigrate(&model.User{}, &model.Account{}, &model.Transaction{})
			},
		},
		{
			version:     "1.1.0",
			description: "history and listing indexes",
			apply:       m.advancedIndexMgr.createIndexes,
		},
	}
	return m
}

// CurrentSchemaVersion is the version of the last known step
func (m *MigrationManager) CurrentSchemaVersion() string {
	return m.steps[len(m.steps)-1].version
}

// MigrateAll applies every step not yet recorded. Running it again is a no-op.
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": m.CurrentSchemaVersion(),
	})

	db := m.db.WithContext(ctx)

	if err := db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	var applied []string
	if err := db.Model(&model.MigrationVersion{}).Pluck("version", &applied).Error; err != nil {
		m.logger.Error("Failed to read applied migrations", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	pending := pendingSteps(m.steps, applied)
	if len(pending) == 0 {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": m.CurrentSchemaVersion(),
		})
		return nil
	}

	for _, s := range pending {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := s.apply(ctx, tx); err != nil {
				return err
			}
			return tx.Create(&model.MigrationVersion{
				Version:   s.version,
				AppliedAt: m.timeProvider.Now().UTC(),
				Details:   s.description,
			}).Error
		})
		if err != nil {
			m.logger.Error("Migration step failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return fmt.Errorf("migration %s (%s): %w", s.version, s.description, err)
		}

		m.logger.Info("Applied migration", map[string]any{
			"version":     s.version,
			"description": s.description,
		})
	}

	m.advancedIndexMgr.CreatePerformanceTweaks(ctx)

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": m.CurrentSchemaVersion(),
	})
	return nil
}

// GetCurrentVersion returns the most recently applied version, or "" for a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	var versions []model.MigrationVersion
	err := m.db.WithContext(ctx).Order("applied_at desc, id desc").Limit(1).Find(&versions).Error
	if err != nil || len(versions) == 0 {
		return "", err
	}
	return versions[0].Version, nil
}

func pendingSteps(steps []step, applied []string) []step {
	done := make(map[string]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	var pending []step
	for _, s := range steps {
		if !done[s.version] {
			pending = append(pending, s)
		}
	}
	return pending
}
