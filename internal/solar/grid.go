package solar

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultGridPreset names DefaultGridEmissionFactor.
const DefaultGridPreset = "default"

// GridFactorPresets maps preset names to grid carbon intensity in kg CO2 per kWh.
//
// Values are annual averages (2023 vintage, Ember / EEA / EPA eGRID) and are
// meant as starting points when the local factor is unknown.
//
//nolint:gochecknoglobals // Read-only lookup table.
var GridFactorPresets = map[string]float64{
	DefaultGridPreset: DefaultGridEmissionFactor,
	"us-average":      0.367,
	"eu-average":      0.244,
	"uk":              0.207,
	"france":          0.056,
	"sweden":          0.041,
	"germany":         0.381,
	"india":           0.713,
	"australia":       0.548,
	"china":           0.582,
}

// GridFactor returns the preset's factor. Names are case-insensitive.
func GridFactor(name string) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultGridPreset
	}
	if f, ok := GridFactorPresets[key]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// GridFactorNames returns the preset names in sorted order.
func GridFactorNames() []string {
	names := make([]string, 0, len(GridFactorPresets))
	for name := range GridFactorPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
