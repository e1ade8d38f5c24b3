package solar

import (
	"fmt"
	"math"
	"strings"
)

// energyFactor returns the multiplier converting unit to kWh.
func energyFactor(unit EnergyUnit) (float64, bool) {
	switch unit {
	case EnergyKWh:
		return KWhToKWh, true
	case EnergyMWh:
		return MWhToKWh, true
	case EnergyGWh:
		return GWhToKWh, true
	default:
		return 0, false
	}
}

// emissionsFactor returns the multiplier converting unit to kg.
func emissionsFactor(unit EmissionsUnit) (float64, bool) {
	switch unit {
	case EmissionsKg:
		return KgToKg, true
	case EmissionsTons:
		return TonsToKg, true
	default:
		return 0, false
	}
}

// ParseEnergyUnit reads an energy unit, case-insensitively.
// An empty string selects kWh.
func ParseEnergyUnit(s string) (EnergyUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kwh":
		return EnergyKWh, nil
	case "mwh":
		return EnergyMWh, nil
	case "gwh":
		return EnergyGWh, nil
	default:
		return "", fmt.Errorf("%w: energy unit %q (want kWh, MWh or GWh)", ErrInvalidUnit, s)
	}
}

// ParseEmissionsUnit reads an emissions unit, case-insensitively. It accepts
// the display labels ("kg CO₂", "tons CO₂") and the CO2 suffixed short forms.
// An empty string selects kg.
func ParseEmissionsUnit(s string) (EmissionsUnit, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("co₂", "", "co2", "", "e", "", " ", "").Replace(norm)
	switch norm {
	case "", "kg":
		return EmissionsKg, nil
	case "t", "ton", "tons", "tonn", "tonns":
		return EmissionsTons, nil
	default:
		return "", fmt.Errorf("%w: emissions unit %q (want kg or tons)", ErrInvalidUnit, s)
	}
}

// NormalizeEnergy converts value in unit to kWh.
func NormalizeEnergy(value float64, unit EnergyUnit) (float64, error) {
	factor, ok := energyFactor(unit)
	if !ok {
		return 0, fmt.Errorf("%w: energy unit %q", ErrInvalidUnit, unit)
	}
	return scale("energy_produced", value, factor)
}

// NormalizeEmissions converts value in unit to kg CO2.
func NormalizeEmissions(value float64, unit EmissionsUnit) (float64, error) {
	factor, ok := emissionsFactor(unit)
	if !ok {
		return 0, fmt.Errorf("%w: emissions unit %q", ErrInvalidUnit, unit)
	}
	return scale("current_emissions", value, factor)
}

// ConvertEnergy converts value between two energy units.
func ConvertEnergy(value float64, from, to EnergyUnit) (float64, error) {
	kwh, err := NormalizeEnergy(value, from)
	if err != nil {
		return 0, err
	}
	factor, ok := energyFactor(to)
	if !ok {
		return 0, fmt.Errorf("%w: energy unit %q", ErrInvalidUnit, to)
	}
	return kwh / factor, nil
}

// ConvertEmissions converts value between two emissions units.
func ConvertEmissions(value float64, from, to EmissionsUnit) (float64, error) {
	kg, err := NormalizeEmissions(value, from)
	if err != nil {
		return 0, err
	}
	factor, ok := emissionsFactor(to)
	if !ok {
		return 0, fmt.Errorf("%w: emissions unit %q", ErrInvalidUnit, to)
	}
	return kg / factor, nil
}

func scale(field string, value, factor float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, invalid(field, value)
	}
	result := value * factor
	if math.IsInf(result, 0) {
		return 0, invalid(field, value)
	}
	return result, nil
}
