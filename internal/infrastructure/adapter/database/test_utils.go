package database

import (
	"context"
	"os"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	timeprovider "github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/time"
)

// TestDBManager provides utilities for integration tests against PostgreSQL.
// Tests using it are skipped unless TEST_DB_HOST is set.
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager connects to the test database, migrates it and empties every table
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv("TEST_DB_HOST")
	if !ok || host == "" {
		t.Skip("TEST_DB_HOST not set; skipping PostgreSQL integration test")
	}

	config := DefaultConfig()
	config.Host = host
	config.Port = getEnvOrDefault("TEST_DB_PORT", "5432")
	config.Username = getEnvOrDefault("TEST_DB_USERNAME", "postgres")
	config.Password = getEnvOrDefault("TEST_DB_PASSWORD", "postgres")
	config.Database = getEnvOrDefault("TEST_DB_DATABASE", "ledger_test")
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.QueryTimeout = 5 * time.Second

	timeProvider := timeprovider.NewRealTimeProvider()
	manager := NewManager(config, logger, timeProvider)

	ctx := context.Background()
	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	m := &TestDBManager{Manager: manager, Config: config, TimeProvider: timeProvider}
	m.TruncateAllTables(t)
	return m
}

// TruncateAllTables empties the ledger tables and resets their sequences
func (m *TestDBManager) TruncateAllTables(t *testing.T) {
	t.Helper()

	err := m.Manager.DB().Exec(`TRUNCATE TABLE transactions, accounts, users RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
