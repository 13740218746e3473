package ticket

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits kept for every amount.
const MoneyPlaces = 2

// Round rounds an amount to MoneyPlaces, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FormatMoney renders an amount with two decimals and a space between thousands.
// Example: 1516610 -> "1 516 610.00"
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(MoneyPlaces)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(' ')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatQuantity renders an item count the same way amounts are rendered.
func FormatQuantity(q int) string {
	return FormatMoney(decimal.NewFromInt(int64(q)))
}
