// Package format provides locale-aware number formatting for the
// presentation layer.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer. English locale keeps
// thousand separators consistent regardless of the host locale.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Number formats an integer with thousand separators.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Float formats a float with the given precision and thousand separators.
func Float(f float64, precision int) string {
	verb := fmt.Sprintf("%%.%df", precision)
	return printer.Sprintf(verb, f)
}

// Kg renders a kg CO2e quantity the way the tips and cards do: whole
// numbers from 10 up, one decimal below.
func Kg(x float64) string {
	if math.Abs(x) >= 10 {
		return Number(int64(math.Round(x)))
	}
	return fmt.Sprintf("%.1f", math.Round(x*10)/10)
}
