package receiptstudio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a monetary value with thousands separators for
// display in table cells and totals nodes, e.g. 2835.5 -> "2,835.50".
// Whole amounts omit the fraction: 2650 -> "2,650".
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(2).String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
		if len(fracPart) == 1 {
			b.WriteByte('0')
		}
	}
	return b.String()
}
