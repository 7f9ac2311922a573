package swap

import (
	"strings"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Formatter renders amount*price in the reference currency with digit
// grouping and a maximum number of fraction digits.
type Formatter struct {
	Symbol   string
	Fraction int
}

// NewFormatter creates a formatter with the default fraction-digit limit.
func NewFormatter(symbol string) Formatter {
	return Formatter{Symbol: symbol, Fraction: DefaultFraction}
}

// Format renders amount*price using the formatter's fraction limit.
func (f Formatter) Format(amount, price float64) string {
	return f.FormatFraction(amount, price, f.Fraction)
}

// FormatFraction renders amount*price with at most fraction decimals.
// Trailing zeros are dropped, so 1234.5 renders as "1,234.5".
func (f Formatter) FormatFraction(amount, price float64, fraction int) string {
	if fraction < 0 {
		fraction = 0
	}
	v := amount * price
	if !isFinite(v) {
		v = 0
	}
	d := decimal.NewFromFloat(v).Round(int32(fraction))

	precision := 0
	if s := d.String(); strings.IndexByte(s, '.') >= 0 {
		precision = len(s) - strings.IndexByte(s, '.') - 1
	}

	ac := accounting.Accounting{Symbol: f.Symbol, Precision: precision}
	return ac.FormatMoneyFloat64(d.InexactFloat64())
}
