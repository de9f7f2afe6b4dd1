package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatGBP renders a monetary value for display: pound sign, two decimal
// places, thousands separators. 1234.5 -> "£1,234.50".
func FormatGBP(v decimal.Decimal) string {
	s := v.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	out := "£" + b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
