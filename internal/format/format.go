// Package format renders wage and count figures for display and log
// output using en-US grouping.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Wage renders an annual wage as whole dollars ("$75,920"), or "N/A" when
// the figure is suppressed.
func Wage(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return printer.Sprintf("$%v", number.Decimal(*v, number.MaxFractionDigits(0)))
}

// Count renders an employment count with grouping ("12,480"), or "N/A"
// when suppressed.
func Count(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return printer.Sprintf("%v", number.Decimal(*v, number.MaxFractionDigits(0)))
}

// Percent renders a rate with one decimal place ("3.4%"), or "N/A" when
// suppressed.
func Percent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return printer.Sprintf("%v%%", number.Decimal(*v, number.MaxFractionDigits(1), number.MinFractionDigits(1)))
}
