package solar

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousands separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// Display precisions used by the calculators.
const (
	// CarbonPrecision is the decimals shown for kg CO2 and kWh values.
	CarbonPrecision = 2
	// PanelPrecision is the decimals shown for panel counts.
	PanelPrecision = 0
)

// FormatNumber formats an integer with thousands separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f rounded to precision decimals with thousands separators.
// Example: FormatFloat(479150, 2) returns "479,150.00".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprintf("%v", f)
	}
	if precision < 0 {
		precision = 0
	}

	const base = 10
	multiplier := math.Pow(base, float64(precision))
	rounded := math.Round(math.Abs(f)*multiplier) / multiplier

	sign := ""
	if f < 0 && rounded != 0 {
		sign = "-"
	}

	formatted := fmt.Sprintf("%.*f", precision, rounded)
	intPart, fracPart, hasFrac := strings.Cut(formatted, ".")

	var whole int64
	if _, err := fmt.Sscan(intPart, &whole); err != nil {
		return sign + formatted
	}

	out := sign + FormatNumber(whole)
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// FormatLarge abbreviates values from a million up as "~X.X million" or
// "~X.X billion" and formats smaller ones as a separated integer.
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= LargeNumberThreshold {
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	}
	return FormatNumber(int64(math.Round(n)))
}

// FormatKg formats a carbon amount, e.g. "20,850.00 kg CO₂".
func FormatKg(kg float64) string {
	return FormatFloat(kg, CarbonPrecision) + " " + EmissionsKg.Label()
}

// FormatPanels formats a fractional panel count as a whole number.
func FormatPanels(panels float64) string {
	return FormatFloat(panels, PanelPrecision)
}
