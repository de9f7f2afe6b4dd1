package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatGBP(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234.5", "£1,234.50"},
		{"0", "£0.00"},
		{"7", "£7.00"},
		{"999.999", "£1,000.00"},
		{"1000000", "£1,000,000.00"},
		{"123456789.01", "£123,456,789.01"},
		{"-42.4", "-£42.40"},
	}

	for _, tc := range cases {
		v := decimal.RequireFromString(tc.in)
		assert.Equal(t, tc.want, FormatGBP(v), "input %s", tc.in)
	}
}
