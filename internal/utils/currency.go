package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders integer cents as a US dollar display string
// with thousands grouping, e.g. 123456 -> "$1,234.56".
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return currencyPrinter.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
