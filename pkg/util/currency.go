package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idrPrinter = message.NewPrinter(language.Indonesian)

// ToIDRCurrency formats an amount as Indonesian Rupiah with zero fractional
// digits, e.g. 15000 -> "Rp 15.000".
func ToIDRCurrency(amount int64) string {
	return idrPrinter.Sprintf("Rp %d", amount)
}
