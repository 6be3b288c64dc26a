package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/personal-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountKind(t *testing.T) {
	testCases := []struct {
		input    string
		expected AccountKind
		err      error
	}{
		{"checking", AccountChecking, nil},
		{"Savings", AccountSavings, nil},
		{" CHECKING ", AccountChecking, nil},
		{"brokerage", "", errs.ErrInvalidAccountType},
		{"", "", errs.ErrInvalidAccountType},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			kind, err := ParseAccountKind(tc.input)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestNewAccount(t *testing.T) {
	fixedTime := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid account", func(t *testing.T) {
		account, err := NewAccount(1, "  Savings ", "savings", mockTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), account.UserID)
		assert.Equal(t, "Savings", account.Name)
		assert.Equal(t, AccountSavings, account.Kind)
		assert.Equal(t, int64(0), account.Balance)
		assert.Equal(t, "0.00", account.FormattedBalance())
		assert.Equal(t, fixedTime, account.CreatedAt)
	})

	t.Run("Invalid input", func(t *testing.T) {
		_, err := NewAccount(0, "Checking", "checking", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidUserID)

		_, err = NewAccount(1, "   ", "checking", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAccountName)

		_, err = NewAccount(1, "Brokerage", "brokerage", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidAccountType)
	})
}
