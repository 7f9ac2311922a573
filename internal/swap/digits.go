package swap

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultFraction is the fraction-digit limit for amounts and currency lines.
	DefaultFraction = 2
	// DefaultRateFraction is the fraction-digit limit for the exchange-rate ratio.
	DefaultRateFraction = 7
	// DefaultRatePriceFraction is used when formatting the unit price on the rate line.
	DefaultRatePriceFraction = 4
)

// LimitDigits rounds v to at most fraction decimal places, half away from zero.
// Non-finite input yields 0.
func LimitDigits(v float64, fraction int) float64 {
	if !isFinite(v) {
		return 0
	}
	if fraction < 0 {
		fraction = 0
	}
	return decimal.NewFromFloat(v).Round(int32(fraction)).InexactFloat64()
}

// ParseAmount coerces user input to a non-negative finite number.
// The second result is false when the text is not a usable number, in which
// case the amount is 0.
func ParseAmount(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) || v < 0 {
		return 0, false
	}
	return v, true
}

// AmountText renders an amount for an input field without trailing zeros.
func AmountText(v float64) string {
	if !isFinite(v) {
		return "0"
	}
	return decimal.NewFromFloat(v).String()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
