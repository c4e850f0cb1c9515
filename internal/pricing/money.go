package pricing

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Cents is a money amount in integer minor units. All accumulation inside
// the engine happens on this type; binary floating point is never used for
// currency sums.
type Cents int64

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders a fixed two-decimal dollar string with digit grouping,
// e.g. "$1,234.00". The output is stable; confirmation and print views
// depend on it.
func FormatMoney(amount Cents) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	return moneyPrinter.Sprintf("%s$%d.%02d", sign, int64(amount)/100, int64(amount)%100)
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDateLocalized renders the long-form Spanish date shown on
// confirmations and invoices, e.g. "15 de enero de 2024".
func FormatDateLocalized(t time.Time) string {
	t = Normalize(t)

	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}
