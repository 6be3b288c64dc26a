package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

func TestFromAppConfig(t *testing.T) {
	appConf := &config.Config{
		Database: config.DatabaseConfig{
			Host:           "db",
			Port:           "6543",
			Username:       "ledger",
			Password:       "pw",
			Database:       "ledger",
			IsolationLevel: "repeatable_read",
			MaxOpenConns:   50,
			QueryTimeout:   2 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "debug"},
	}

	c := FromAppConfig(appConf)

	assert.Equal(t, "db", c.Host)
	assert.Equal(t, 50, c.MaxOpenConns)
	assert.Equal(t, 10, c.MaxIdleConns)
	assert.Equal(t, 2*time.Second, c.QueryTimeout)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "host=db port=6543 user=ledger password=pw dbname=ledger sslmode=disable", c.DSN())

	level, err := c.TxIsolation()
	require.NoError(t, err)
	assert.Equal(t, sql.LevelRepeatableRead, level)
	assert.NoError(t, c.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing host", func(c *Config) { c.Host = "" }, "host"},
		{"missing user", func(c *Config) { c.Username = "" }, "username"},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "sometimes" }, "SSL mode"},
		{"bad isolation", func(c *Config) { c.IsolationLevel = "chaos" }, "isolation level"},
		{"no retries", func(c *Config) { c.RetryAttempts = 0 }, "retry attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			c.Username = "ledger"
			c.Database = "ledger"
			tt.mutate(c)

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTxIsolation(t *testing.T) {
	tests := []struct {
		level string
		want  sql.IsolationLevel
	}{
		{"", sql.LevelReadCommitted},
		{"read committed", sql.LevelReadCommitted},
		{"READ_COMMITTED", sql.LevelReadCommitted},
		{"repeatable read", sql.LevelRepeatableRead},
		{"serializable", sql.LevelSerializable},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			c := DefaultConfig()
			c.IsolationLevel = tt.level
			level, err := c.TxIsolation()
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}

	level, err := DefaultConfig().TxIsolation()
	require.NoError(t, err)
	assert.Equal(t, sql.LevelReadCommitted, level)
}
