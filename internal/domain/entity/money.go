package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount converts a human decimal amount into minor units (cents).
//
// Accepted input, after trimming whitespace:
//   - an optional sign and an optional leading "$" in either order ("-$1.50", "$-1.50")
//   - "," thousands separators, which are dropped
//   - an integer part and at most 2 fractional digits, right-padded to 2
//
// "5" becomes 500, "5.1" becomes 510, ".5" becomes 50 and "-1.50" becomes -150.
// Every failure wraps ErrInvalidAmount.
func ParseAmount(text string) (int64, error) {
	amount := strings.TrimSpace(text)
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	negative := false
	amount, signed := trimSign(amount, &negative)
	amount = strings.TrimPrefix(amount, "$")
	if !signed {
		amount, _ = trimSign(amount, &negative)
	}
	amount = strings.ReplaceAll(amount, ",", "")

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: more than one decimal point in %q", errs.ErrInvalidAmount, text)
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if len(frac) > MaxDecimalPlaces {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: no digits in %q", errs.ErrInvalidAmount, text)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidAmount, text)
	}

	digits := whole + frac + strings.Repeat("0", MaxDecimalPlaces-len(frac))
	magnitude, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrAmountOverflow, text)
	}

	if negative {
		if magnitude > uint64(math.MaxInt64)+1 {
			return 0, fmt.Errorf("%w: %q", errs.ErrAmountOverflow, text)
		}
		return int64(-magnitude), nil
	}
	if magnitude > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", errs.ErrAmountOverflow, text)
	}
	return int64(magnitude), nil
}

// FormatAmount renders cents as "[-]<integer>.<two digits>" with no grouping.
// For example 123450 becomes "1234.50" and -5 becomes "-0.05".
func FormatAmount(cents int64) string {
	var magnitude uint64
	sign := ""
	if cents < 0 {
		sign = "-"
		// MinInt64 has no positive counterpart in int64
		magnitude = uint64(-(cents + 1)) + 1
	} else {
		magnitude = uint64(cents)
	}

	return fmt.Sprintf("%s%d.%02d", sign, magnitude/100, magnitude%100)
}

func trimSign(amount string, negative *bool) (string, bool) {
	switch {
	case strings.HasPrefix(amount, "-"):
		*negative = true
		return amount[1:], true
	case strings.HasPrefix(amount, "+"):
		return amount[1:], true
	}
	return amount, false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
