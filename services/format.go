package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats an amount in Indian Rupee notation with exactly 2
// decimal places, using Indian digit grouping (e.g. ₹1,23,45,678.90).
func FormatINR(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "₹" + applyIndianGrouping(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatRupees formats an amount as whole rupees (e.g. ₹1,23,457). Paise
// are rounded half away from zero and not shown.
func FormatRupees(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "₹" + strconv.FormatFloat(amount, 'f', 0, 64)
	}
	rounded := decimal.NewFromFloat(amount).Round(0)

	result := "₹" + applyIndianGrouping(rounded.Abs().String())
	if rounded.IsNegative() {
		result = "-" + result
	}
	return result
}

// FormatPercent renders a GST rate without trailing zeros, e.g. 18 -> "18%",
// 2.5 -> "2.5%".
func FormatPercent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "%"
}

// FormatSqft renders an area with up to 3 decimals and no trailing zeros.
func FormatSqft(sqft float64) string {
	return strconv.FormatFloat(round(sqft, 3), 'f', -1, 64)
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]

	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// formatQty renders whole numbers without decimals and anything else with
// 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
