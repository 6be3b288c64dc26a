package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/time"
)

type fakeStats struct {
	stats   sql.DBStats
	pingErr error
}

func (f *fakeStats) Stats() sql.DBStats                   { return f.stats }
func (f *fakeStats) PingContext(ctx context.Context) error { return f.pingErr }

func TestConnectionPoolMonitor(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	source := &fakeStats{stats: sql.DBStats{MaxOpenConnections: 10, InUse: 9, Idle: 1, OpenConnections: 10}}
	monitor := NewConnectionPoolMonitor(source, logger.NewZapLoggerFrom(zap.New(core)), timeprovider.NewRealTimeProvider())

	monitor.collectMetrics()

	metrics := monitor.GetMetrics()
	assert.Equal(t, 9, metrics.InUse)
	assert.Equal(t, 10, metrics.OpenConnections)
	assert.Equal(t, 1, logs.FilterMessage("Database connection pool nearly exhausted").Len())

	assert.NoError(t, monitor.Ping(context.Background()))
	source.pingErr = errors.New("down")
	assert.ErrorContains(t, monitor.Ping(context.Background()), "down")

	monitor.Stop()
	monitor.Stop()
}
