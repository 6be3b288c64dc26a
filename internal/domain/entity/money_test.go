package entity

import (
	"math"
	"testing"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"5", 500},
			{"5.1", 510},
			{"5.", 500},
			{".5", 50},
			{"0", 0},
			{"-1.50", -150},
			{"+2.25", 225},
			{"$1,234.5", 123450},
			{"-$3", -300},
			{"$-3", -300},
			{"  42.07  ", 4207},
			{"1,000,000", 100000000},
			{"92233720368547758.07", math.MaxInt64},
			{"-92233720368547758.08", math.MinInt64},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseAmount(tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			description string
		}{
			{"", "Empty string"},
			{"   ", "Whitespace only"},
			{"1.234", "Too many decimal places"},
			{"abc", "Non-numeric"},
			{"1.00.00", "Multiple decimal points"},
			{".", "Lone decimal point"},
			{"$", "Currency symbol only"},
			{"--5", "Double sign"},
			{"1 000", "Inner whitespace"},
			{"1e5", "Exponent"},
			{"92233720368547758.08", "Positive overflow"},
			{"-92233720368547758.09", "Negative overflow"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.ErrorIs(t, err, errs.ErrInvalidAmount)
			})
		}
	})
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{10, "0.10"},
		{500, "5.00"},
		{123450, "1234.50"},
		{-5, "-0.05"},
		{-150, "-1.50"},
		{100000000, "1000000.00"},
		{math.MaxInt64, "92233720368547758.07"},
		{math.MinInt64, "-92233720368547758.08"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(tc.cents))
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	t.Run("Format then parse", func(t *testing.T) {
		values := []int64{0, 1, -1, 99, -99, 100, 123456789, -987654321, math.MaxInt64, math.MinInt64}
		for v := int64(-1000); v <= 1000; v += 7 {
			values = append(values, v)
		}

		for _, v := range values {
			parsed, err := ParseAmount(FormatAmount(v))
			require.NoError(t, err, "value %d", v)
			assert.Equal(t, v, parsed)
		}
	})

	t.Run("Parse then format denotes the same value", func(t *testing.T) {
		testCases := map[string]string{
			"5":         "5.00",
			"5.1":       "5.10",
			".5":        "0.50",
			"$1,234.5":  "1234.50",
			"-0.01":     "-0.01",
			"007.70":    "7.70",
			"1,000,000": "1000000.00",
		}

		for input, expected := range testCases {
			cents, err := ParseAmount(input)
			require.NoError(t, err)
			assert.Equal(t, expected, FormatAmount(cents), "input %q", input)
		}
	})
}
