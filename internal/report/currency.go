package report

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatIDR renders a rupiah amount the way the dashboard always did:
// thousands separators, no decimals, Rp prefix. Non-finite input falls
// back to zero formatted as currency.
func FormatIDR(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	return idPrinter.Sprintf("Rp %d", int64(math.Round(value)))
}
