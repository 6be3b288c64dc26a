package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/personal-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid user", func(t *testing.T) {
		user, err := NewUser(" alice ", "pbkdf2-sha256$1$c2FsdA$aGFzaA", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "pbkdf2-sha256$1$c2FsdA$aGFzaA", user.PasswordHash)
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Blank username", func(t *testing.T) {
		_, err := NewUser("   ", "hash", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUsername)
	})
}
