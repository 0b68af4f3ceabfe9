package billing

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders an amount as dollars with two decimals, e.g. "$48.60".
func FormatUSD(amount float64) string {
	amount = round2(amount)
	if amount < 0 {
		return "-" + usdPrinter.Sprintf("$%.2f", math.Abs(amount))
	}
	return usdPrinter.Sprintf("$%.2f", amount)
}
