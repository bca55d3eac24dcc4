// Package cli provides the scenario loader and terminal rendering for the kakeibo command.
package cli

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatYen formats a whole-yen amount, e.g. -1234 -> "-¥1,234".
func FormatYen(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	if n < 0 {
		return "-¥" + FormatNumber(-n)
	}
	return "¥" + FormatNumber(n)
}

// FormatDelta formats a balance change with an explicit sign.
// Zero renders without a sign.
func FormatDelta(delta decimal.Decimal) string {
	switch {
	case delta.IsPositive():
		return "+" + FormatYen(delta)
	case delta.IsNegative():
		return FormatYen(delta)
	default:
		return FormatYen(decimal.Zero)
	}
}

// FormatPercent formats a percentage that is already scaled to 0-100.
func FormatPercent(pct decimal.Decimal) string {
	return pct.StringFixed(1) + "%"
}

// FormatDays formats a day count, e.g. 5 -> "5日".
func FormatDays(n int) string {
	return strconv.Itoa(n) + "日"
}
