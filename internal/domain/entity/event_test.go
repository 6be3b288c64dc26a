package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerEvent(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	event := NewLedgerEvent(EventTransferred, 7, "Checking", 4000, 6000, "savings", at).
		WithTarget("Savings", 4000)

	id, err := ulid.Parse(event.ID)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), id.Time())
	assert.Equal(t, "40", event.Amount.String())
	assert.Equal(t, "60", event.Balance.String())
	assert.Equal(t, "Savings", event.TargetAccount)
	assert.Equal(t, "40.00", event.TargetBalance.StringFixed(2))

	payload, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"type":"ledger.transferred"`)
	assert.Contains(t, string(payload), `"amount":"40"`)
}

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, "1234.50", CentsToDecimal(123450).StringFixed(2))
	assert.Equal(t, "-0.05", CentsToDecimal(-5).StringFixed(2))
}
