package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/personal-ledger/internal/domain/entity"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	event := entity.NewLedgerEvent(entity.EventDeposited, 42, "Checking", 1050, 2050, "salary", at)

	t.Run("Writes keyed JSON message", func(t *testing.T) {
		writer := &recordingWriter{}
		publisher := &Publisher{writer: writer}

		require.NoError(t, publisher.Publish(context.Background(), event))
		require.Len(t, writer.messages, 1)

		msg := writer.messages[0]
		assert.Equal(t, "42", string(msg.Key))
		assert.Equal(t, at, msg.Time)
		assert.Equal(t, "event-type", msg.Headers[0].Key)
		assert.Equal(t, "ledger.deposited", string(msg.Headers[0].Value))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "10.5", decoded["amount"])
		assert.Equal(t, "20.5", decoded["balance"])
		assert.Equal(t, "Checking", decoded["account"])
	})

	t.Run("Wraps writer errors", func(t *testing.T) {
		cause := errors.New("broker unreachable")
		publisher := &Publisher{writer: &recordingWriter{err: cause}}

		err := publisher.Publish(context.Background(), event)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), event.ID)
	})

	t.Run("Close", func(t *testing.T) {
		writer := &recordingWriter{}
		require.NoError(t, (&Publisher{writer: writer}).Close())
		assert.True(t, writer.closed)
	})
}
