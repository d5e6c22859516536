package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supplyhub/supplyhub/internal/feed"
)

func TestCleanPrice(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{"plain", "12.50", "12.5", true},
		{"currency symbol", "$3.99", "3.99", true},
		{"thousands separator", "1,234.56", "1234.56", true},
		{"surrounding spaces", "  7.25 ", "7.25", true},
		{"stray quotes", `"4.10"`, "4.1", true},
		{"integer", "15", "15", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"nan", "nan", "", false},
		{"nan uppercase", "NaN", "", false},
		{"nan mojibake", "ânanâ", "", false},
		{"nan smart quotes", "“nan”", "", false},
		{"letters only", "call for price", "", false},
		{"punctuation only", "-", "", false},
		{"lone dot", ".", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := feed.CleanPrice(tc.raw)
			assert.Equal(t, tc.valid, got.Valid)
			if tc.valid {
				assert.Equal(t, tc.want, got.Decimal.String())
			}
		})
	}
}

func TestCleanPriceNeverZeroFromGarbage(t *testing.T) {
	// A cell with no digits must become null, not a zero price.
	for _, raw := range []string{"N/A", "$", "..", "--"} {
		got := feed.CleanPrice(raw)
		assert.False(t, got.Valid, "raw=%q", raw)
	}
}

func TestCleanQuantity(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"0", 0},
		{"42", 42},
		{" 7 ", 7},
		{"12.0", 12},
		{"", 0},
		{"nan", 0},
		{"-3", 0},
		{"lots", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, feed.CleanQuantity(tc.raw), "raw=%q", tc.raw)
	}
}
