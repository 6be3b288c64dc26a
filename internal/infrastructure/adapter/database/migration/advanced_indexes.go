package migration

import (
	"context"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes the models cannot express
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

var advancedIndexes = []struct {
	name string
	sql  string
}{
	{
		// History reads walk one account newest first
		name: "idx_transactions_account_id_desc",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_account_id_desc ON transactions (account_id, id DESC)`,
	},
	{
		name: "idx_accounts_user_id",
		sql:  `CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts (user_id, id)`,
	},
	{
		name: "idx_transactions_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
			ON transactions USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
}

// createIndexes creates the indexes used by history and account listing on db,
// which is the migration step's transaction
func (m *AdvancedIndexManager) createIndexes(ctx context.Context, db *gorm.DB) error {
	m.logger.Info("Creating PostgreSQL indexes", nil)

	for _, index := range advancedIndexes {
		if err := db.WithContext(ctx).Exec(index.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": index.name,
				"error": err.Error(),
			})
			return err
		}
	}

	return nil
}

// CreatePerformanceTweaks applies storage settings. Failures are logged, not returned.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	// accounts rows are updated on every entry; leave room for HOT updates
	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE accounts SET (fillfactor = 80)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for accounts table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions ALTER COLUMN account_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for account_id", map[string]any{
			"error": err.Error(),
		})
	}
}
