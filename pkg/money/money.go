// Package money formats monetary values for presentation. Amounts are plain
// float64 everywhere else; formatting happens only at the output edge.
package money

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Format renders a value as Brazilian reais, the shop's trading currency.
func Format(value float64) string {
	return printer.Sprintf("%v", currency.Symbol(currency.BRL.Amount(value)))
}
