package solar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// groupedNumber matches text whose commas are 3-digit thousands separators.
//nolint:gochecknoglobals // Compiled once.
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// ParseNumber reads a decimal number from form text. Surrounding whitespace and
// "," thousands separators are ignored. Empty text, NaN and infinities fail
// with a *ParseError matching ErrInvalidInput.
func ParseNumber(text string) (float64, error) {
	return parseNumber("", text)
}

// ParsePanelCount reads a whole panel count from form text.
func ParsePanelCount(text string) (int, error) {
	clean, ok := cleanNumber(text)
	if !ok {
		return 0, &ParseError{Field: "panel_count", Text: text}
	}
	n, err := strconv.Atoi(clean)
	if err != nil {
		return 0, &ParseError{Field: "panel_count", Text: text, Err: err}
	}
	if !IsPanelCount(float64(n)) {
		return 0, &ParseError{Field: "panel_count", Text: text}
	}
	return n, nil
}

func parseNumber(field, text string) (float64, error) {
	clean, ok := cleanNumber(text)
	if !ok || clean == "" {
		return 0, &ParseError{Field: field, Text: text}
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Text: text, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Field: field, Text: text}
	}
	return v, nil
}

// IsPanelCount reports whether v is a whole number within ±MaxPanelCount, so
// it converts to int without loss.
func IsPanelCount(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) <= MaxPanelCount
}

// cleanNumber trims text and removes thousands separators. Commas in any
// other position make the text invalid.
func cleanNumber(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.Contains(trimmed, ",") {
		return trimmed, true
	}
	if !groupedNumber.MatchString(trimmed) {
		return "", false
	}
	return strings.ReplaceAll(trimmed, ",", ""), true
}

// FieldResolution is the single resolved value of a form field.
// When the entered text could not be parsed, Value keeps the previous valid
// value and Warning explains why.
type FieldResolution struct {
	Value    float64
	Parsed   bool
	Warning  string
	ParseErr error
}

// ResolveField parses text for the named field and falls back to previous on
// failure. The caller decides whether a warning blocks the calculation.
func ResolveField(field, text string, previous float64) FieldResolution {
	v, err := parseNumber(field, text)
	if err != nil {
		return FieldResolution{
			Value:    previous,
			Warning:  InvalidNumberWarning(field),
			ParseErr: err,
		}
	}
	return FieldResolution{Value: v, Parsed: true}
}

// InvalidNumberWarning is the warning shown for unparsable text in field.
func InvalidNumberWarning(field string) string {
	return fmt.Sprintf("Please enter a valid number for %s.", field)
}
