package export

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators, e.g. 12,345
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats value with two decimals and thousands separators
func FormatFloat(value float64) string {
	return printer.Sprintf("%.2f", value)
}

// FormatPercentage formats a 0-100 percentage with one decimal, e.g. 45.2%
func FormatPercentage(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}
