package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/personal-ledger/mocks/port/core"
)

func newObservedDatabaseLogger(t *testing.T, level string, elapsed time.Duration) (gormlogger.Interface, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	tp := mockcore.NewMockTimeProvider(t)
	tp.EXPECT().Since(mock.Anything).Return(coreport.Duration(elapsed)).Maybe()

	return NewDatabaseLogger(logger.NewZapLoggerFrom(zap.New(core)), tp, level, 100*time.Millisecond), logs
}

func TestDatabaseLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM accounts WHERE id = 1", 1 }
	ctx := logger.ContextWithRequestID(context.Background(), "req-1")

	t.Run("Errors are logged with request id", func(t *testing.T) {
		l, logs := newObservedDatabaseLogger(t, "info", time.Millisecond)
		l.Trace(ctx, time.Now(), query, errors.New("boom"))

		entries := logs.FilterMessage("SQL Error").All()
		if assert.Len(t, entries, 1) {
			fields := entries[0].ContextMap()
			assert.Equal(t, "req-1", fields["request_id"])
			assert.Equal(t, "SELECT", fields["type"])
			assert.Equal(t, "database", fields["source"])
		}
	})

	t.Run("Record not found is not an error", func(t *testing.T) {
		l, logs := newObservedDatabaseLogger(t, "info", time.Millisecond)
		l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
		assert.Zero(t, logs.Len())
	})

	t.Run("Slow queries warn", func(t *testing.T) {
		l, logs := newObservedDatabaseLogger(t, "info", time.Second)
		l.Trace(ctx, time.Now(), query, nil)
		assert.Equal(t, 1, logs.FilterMessage("Slow SQL Query").Len())
	})

	t.Run("Debug traces every statement", func(t *testing.T) {
		l, logs := newObservedDatabaseLogger(t, "debug", time.Millisecond)
		l.Trace(ctx, time.Now(), query, nil)
		assert.Equal(t, 1, logs.FilterMessage("SQL Query").Len())
	})

	t.Run("Silent", func(t *testing.T) {
		l, logs := newObservedDatabaseLogger(t, "silent", time.Second)
		l.Trace(ctx, time.Now(), query, errors.New("boom"))
		assert.Zero(t, logs.Len())
	})
}

func TestParseGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, ParseGormLogLevel("DEBUG"))
	assert.Equal(t, gormlogger.Warn, ParseGormLogLevel("info"))
	assert.Equal(t, gormlogger.Error, ParseGormLogLevel("error"))
	assert.Equal(t, gormlogger.Silent, ParseGormLogLevel("silent"))
}
