package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPBKDF2Hasher(t *testing.T) {
	// low iteration count keeps the test fast
	hasher := NewPBKDF2Hasher(1000)

	t.Run("Hash and verify", func(t *testing.T) {
		encoded, err := hasher.Hash("correct horse")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(encoded, "pbkdf2-sha256$1000$"))

		ok, err := hasher.Verify("correct horse", encoded)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hasher.Verify("battery staple", encoded)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Salts differ", func(t *testing.T) {
		first, err := hasher.Hash("same")
		require.NoError(t, err)
		second, err := hasher.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Stored iterations win", func(t *testing.T) {
		encoded, err := NewPBKDF2Hasher(500).Hash("pw")
		require.NoError(t, err)

		ok, err := hasher.Verify("pw", encoded)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Malformed hashes", func(t *testing.T) {
		for _, encoded := range []string{
			"",
			"plain",
			"argon2$1$c2FsdA$a2V5",
			"pbkdf2-sha256$abc$c2FsdA$a2V5",
			"pbkdf2-sha256$0$c2FsdA$a2V5",
			"pbkdf2-sha256$10$!!!$a2V5",
			"pbkdf2-sha256$10$c2FsdA$",
		} {
			_, err := hasher.Verify("pw", encoded)
			assert.ErrorIs(t, err, ErrInvalidHash, "encoded %q", encoded)
		}
	})

	t.Run("Default iterations", func(t *testing.T) {
		assert.Equal(t, DefaultIterations, NewPBKDF2Hasher(0).iterations)
	})
}
