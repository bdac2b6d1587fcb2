// Package money holds the currency helpers shared by the tax engine.
//
// All amounts are shopspring decimals kept at cent precision. Parsing is
// deliberately lenient: form input that cannot be read as a number is
// treated as zero, never as an error.
package money

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits stored for every amount.
const Places = 2

var (
	// disallowed matches every character that is not part of a number.
	disallowed = regexp.MustCompile(`[^0-9.\-]`)

	// numericPrefix is the longest leading run that reads as a number,
	// so "1.2.3" parses as 1.2 and "12-3" as 12.
	numericPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// Parse reads raw form input as an amount. Everything except digits, '.'
// and '-' is stripped first ("$1,234.50" reads as 1234.50). Empty or
// unreadable input yields zero.
func Parse(raw string) decimal.Decimal {
	cleaned := disallowed.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return decimal.Zero
	}
	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return Cents(d)
}

// Cents rounds an amount to cent precision.
func Cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// NonNegative clamps an amount at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds amounts without clamping.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Whole builds an amount from a whole-dollar constant.
func Whole(dollars int64) decimal.Decimal {
	return decimal.NewFromInt(dollars)
}

// Must parses a constant literal and panics if it is malformed. Use it only
// for compile-time tables.
func Must(literal string) decimal.Decimal {
	return decimal.RequireFromString(literal)
}

// Plain renders an amount as a fixed two-place decimal ("1234.50").
func Plain(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Currency formats an amount as thousands-grouped dollars, "$1,234.50".
// Negative amounts read "-$1,234.50".
func Currency(d decimal.Decimal) string {
	d = Cents(d)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(Places)
	cents := fixed[strings.IndexByte(fixed, '.'):]
	return sign + "$" + humanize.BigComma(d.Truncate(0).BigInt()) + cents
}
