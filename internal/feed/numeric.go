package feed

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// nanSentinels are literal strings vendors emit for missing prices, including
// the mojibake forms produced when a UTF-8 "nan" with smart quotes passes
// through a Latin-1 export.
var nanSentinels = []string{"nan", "ânanâ", "“nan”"}

// CleanPrice normalizes a raw vendor price string to a nullable decimal.
//
// Empty strings and nan sentinels become null. Everything that is not a digit
// or a decimal point is stripped (currency symbols, thousands separators,
// stray quoting); if no digits survive, the value is null rather than zero so
// a garbage cell never masquerades as a free product.
func CleanPrice(raw string) decimal.NullDecimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.NullDecimal{}
	}
	lower := strings.ToLower(s)
	for _, sentinel := range nanSentinels {
		if lower == sentinel {
			return decimal.NullDecimal{}
		}
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.Trim(cleaned, ".") == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// CleanQuantity coerces a raw quantity cell to a non-negative count. Blank or
// non-numeric cells count as zero stock, never as an error: a warehouse with
// a corrupt cell should not block the rest of the row.
func CleanQuantity(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	// Some vendors export counts as decimals ("12.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}
