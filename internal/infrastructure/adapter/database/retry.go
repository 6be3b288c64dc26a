package database

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/personal-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/config"
)

// RetryConfig holds configuration for retrying units that lost a write conflict
type RetryConfig struct {
	MaxRetries    int
	RetryInterval time.Duration
	MaxInterval   time.Duration
	JitterFactor  float64 // Fraction of the backoff added at random (0.0-1.0)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    10,
		RetryInterval: 20 * time.Millisecond,
		MaxInterval:   time.Second,
		JitterFactor:  0.2,
	}
}

// RetryConfigFrom builds a RetryConfig from the transaction settings
func RetryConfigFrom(conf config.TransactionConfig) RetryConfig {
	retry := DefaultRetryConfig()
	if conf.MaxRetries > 0 {
		retry.MaxRetries = conf.MaxRetries
	}
	if conf.RetryInterval > 0 {
		retry.RetryInterval = conf.RetryInterval
	}
	if conf.MaxRetryInterval > 0 {
		retry.MaxInterval = conf.MaxRetryInterval
	}
	if conf.RetryJitterPercent >= 0 && conf.RetryJitterPercent <= 100 {
		retry.JitterFactor = float64(conf.RetryJitterPercent) / 100
	}
	return retry
}

// RetryOnConflict runs operation until it stops failing with ErrWriteConflict.
// Once MaxRetries retries are used up the last conflict is reported as ErrStorageUnavailable.
func RetryOnConflict(
	ctx context.Context,
	config RetryConfig,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	operation func() error,
) error {
	var err error

	for attempt := 0; ; attempt++ {
		err = operation()
		if err == nil || !errors.Is(err, errs.ErrWriteConflict) {
			return err
		}
		if attempt >= config.MaxRetries {
			break
		}

		backoff := calculateBackoffWithJitter(attempt, config)
		logger.Debug("Write conflict, retrying unit of work", map[string]any{
			"attempt":     attempt + 1,
			"max_retries": config.MaxRetries,
			"retry_after": backoff.String(),
		})

		if sleepErr := timeProvider.Sleep(ctx, coreport.Duration(backoff)); sleepErr != nil {
			return sleepErr
		}
	}

	logger.Warn("Write conflict persisted after all retries", map[string]any{
		"max_retries": config.MaxRetries,
		"error":       err.Error(),
	})
	return fmt.Errorf("%w: %d retries exhausted: %w", errs.ErrStorageUnavailable, config.MaxRetries, err)
}

// calculateBackoffWithJitter computes the backoff duration with exponential increase and jitter
func calculateBackoffWithJitter(attempt int, config RetryConfig) time.Duration {
	backoff := config.RetryInterval
	for i := 0; i < attempt && backoff < config.MaxInterval; i++ {
		backoff *= 2
	}

	if backoff > config.MaxInterval {
		backoff = config.MaxInterval
	}

	if config.JitterFactor > 0 {
		backoff += time.Duration(float64(backoff) * config.JitterFactor * rand.Float64())
	}

	return backoff
}
