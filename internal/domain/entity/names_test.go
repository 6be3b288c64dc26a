package entity

import (
	"strings"
	"testing"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAccountName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Trimmed", "  Savings\t", "Savings", false},
		{"Exactly max length", strings.Repeat("a", MaxNameLength), strings.Repeat("a", MaxNameLength), false},
		{"Max length counts characters", strings.Repeat("é", MaxNameLength), strings.Repeat("é", MaxNameLength), false},
		{"Blank", "   ", "", true},
		{"Too long", strings.Repeat("a", MaxNameLength+1), "", true},
		{"Invalid UTF-8", "Sav\xffings", "", true},
		{"NUL byte", "Sav\x00ings", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			name, err := NormalizeAccountName(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, errs.ErrInvalidAccountName)
				assert.Equal(t, errs.CodeInvalidAccountName, errs.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, name)
		})
	}
}

func TestNormalizeUsername(t *testing.T) {
	name, err := NormalizeUsername(" alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	_, err = NormalizeUsername(strings.Repeat("b", MaxNameLength+1))
	assert.ErrorIs(t, err, errs.ErrInvalidUsername)

	_, err = NormalizeUsername("al\x00ice")
	assert.ErrorIs(t, err, errs.ErrInvalidUsername)
}

func TestValidateNote(t *testing.T) {
	assert.NoError(t, ValidateNote(""))
	assert.NoError(t, ValidateNote("rent for März"))

	err := ValidateNote("bad\xfe")
	assert.ErrorIs(t, err, errs.ErrInvalidNote)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	assert.False(t, errs.IsTransient(err))

	assert.ErrorIs(t, ValidateNote("a\x00b"), errs.ErrInvalidNote)
}

func TestLookupName(t *testing.T) {
	assert.Equal(t, "Checking", LookupName(" Checking \n"))
}
