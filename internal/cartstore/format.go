package cartstore

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sme-storefront/internal/domain"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a minor-unit amount per ISO currency code, e.g.
// 599 "usd" to a dollar string.
func FormatAmount(cents int64, currencyCode string) string {
	unit, err := currency.ParseISO(strings.ToUpper(currencyCode))
	if err != nil {
		unit = currency.USD
	}
	return printer.Sprintf("%v", currency.Symbol(unit.Amount(float64(cents)/100)))
}

// FormatCartTotal renders the cart's grand total for display.
func FormatCartTotal(cart *domain.Cart) string {
	return FormatAmount(cart.Total, cart.CurrencyCode)
}

// FormatLineItemPrice renders a line item's total. Defaults to USD when the
// currency code is empty.
func FormatLineItemPrice(item domain.LineItem, currencyCode string) string {
	if currencyCode == "" {
		currencyCode = "usd"
	}
	return FormatAmount(item.Total, currencyCode)
}
