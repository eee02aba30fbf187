package export

import (
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyFormatter renders money amounts stored in cents as locale-aware,
// symbol-prefixed strings with two decimal places.
type CurrencyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewCurrencyFormatter builds a formatter for the given BCP 47 locale and
// ISO 4217 currency code. Unknown values fall back to es-MX / MXN.
func NewCurrencyFormatter(locale, unit string) *CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-MX")
	}
	cur, err := currency.ParseISO(unit)
	if err != nil {
		cur = currency.MXN
	}
	return &CurrencyFormatter{
		printer: message.NewPrinter(tag),
		unit:    cur,
	}
}

// FormatCents renders an amount of cents, e.g. 123450 -> "MX$1,234.50".
func (f *CurrencyFormatter) FormatCents(cents int64) string {
	amount := float64(cents) / 100
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(amount)))
}
