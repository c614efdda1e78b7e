// Package format renders monetary amounts for reports and prompts.
package format

import (
	"math"
	"strconv"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return withSign(amount, "$", 2)
}

// WholeCurrency returns a currency string rounded to whole dollars (e.g., "$1,235").
func WholeCurrency(amount float64) string {
	return withSign(math.Round(amount), "$", 0)
}

func withSign(amount float64, symbol string, decimals int) string {
	formatted := formatPositive(math.Abs(amount), decimals)
	if amount < 0 && strings.Trim(formatted, "0.,") != "" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

func formatPositive(value float64, decimals int) string {
	formatted := strconv.FormatFloat(value, 'f', decimals, 64)
	intPart, decPart, hasDecimals := strings.Cut(formatted, ".")

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if !hasDecimals {
		return intPart
	}
	return intPart + "." + decPart
}
