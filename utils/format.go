package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatThousands: 2197 -> "2,197"
func FormatThousands(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatPercent: 73.9 -> "73.9%"
func FormatPercent(p float64) string {
	return numberPrinter.Sprintf("%.1f%%", p)
}
