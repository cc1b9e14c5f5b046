// Package format renders monetary quantities as localized currency strings.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/owengrv/running-the-numbers/pkg/mathutil"
)

// Currency returns a currency string with a dollar sign and thousands
// separators, rounded to whole dollars (e.g., "-$1,235").
func Currency(amount float64) string {
	return CurrencyWithDecimals(amount, 0)
}

// CurrencyWithDecimals returns a currency string with the requested number of
// decimal places. NaN and infinite inputs render as the zero form rather than
// propagating "NaN" text.
func CurrencyWithDecimals(amount float64, decimals int) string {
	amount = mathutil.Sanitize(amount)
	if decimals < 0 {
		decimals = 0
	}
	formatted := formatPositiveCurrency(math.Abs(amount), decimals)
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// SignedCurrency returns a currency string with an explicit leading sign,
// used for surplus and trend values (e.g., "+$320", "-$1,235").
func SignedCurrency(amount float64) string {
	amount = mathutil.Sanitize(amount)
	// The sign follows the rounded value so a sub-cent negative does not
	// render as "-$0".
	if mathutil.Round(amount) < 0 {
		return CurrencyWithDecimals(amount, 0)
	}
	return "+" + CurrencyWithDecimals(amount, 0)
}

func formatPositiveCurrency(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

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

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}
