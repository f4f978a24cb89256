// Package core holds the expenditure domain: records, categories, the
// query filter, amount coercion and the listing aggregations.
package core

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ParseAmount coerces textual amount input into its numeric form.
// Amounts are never stored as text; anything strconv cannot parse into a
// finite float is rejected with ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("20")    -> 20, nil
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

var totalPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with locale-aware digit grouping for
// display. Accumulation stays numeric end to end; rounding happens only
// here, at the formatting boundary.
func FormatAmount(v float64) string {
	return totalPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}
