package solar

import "math"

// ComputeOffset runs the existing-panel model.
//
// Energy and emissions are normalized to kWh and kg CO2 first. The carbon
// already offset is energy * grid factor; whatever emissions remain are
// converted back into the energy, and then the panels at the current
// per-panel yield, needed to offset them.
//
// It fails with ErrInvalidInput when PanelCount or EnergyProduced is not
// positive, or CurrentEmissions is negative, and with ErrDivisionGuard when
// the grid emission factor is not positive.
func ComputeOffset(in OffsetInput) (OffsetResult, error) {
	if in.PanelCount <= 0 {
		return OffsetResult{}, invalid("panel_count", float64(in.PanelCount))
	}
	if !(in.EnergyProduced > 0) || math.IsInf(in.EnergyProduced, 0) {
		return OffsetResult{}, invalid("energy_produced", in.EnergyProduced)
	}
	if !(in.CurrentEmissions >= 0) || math.IsInf(in.CurrentEmissions, 0) {
		return OffsetResult{}, invalid("current_emissions", in.CurrentEmissions)
	}

	energyUnit := in.EnergyUnit
	if energyUnit == "" {
		energyUnit = EnergyKWh
	}
	emissionsUnit := in.EmissionsUnit
	if emissionsUnit == "" {
		emissionsUnit = EmissionsKg
	}

	energyKWh, err := NormalizeEnergy(in.EnergyProduced, energyUnit)
	if err != nil {
		return OffsetResult{}, err
	}
	emissionsKg, err := NormalizeEmissions(in.CurrentEmissions, emissionsUnit)
	if err != nil {
		return OffsetResult{}, err
	}

	factor, err := resolveFactor(in.GridEmissionFactor)
	if err != nil {
		return OffsetResult{}, err
	}

	res := OffsetResult{
		PanelCount:         in.PanelCount,
		EnergyProducedKWh:  energyKWh,
		CurrentEmissionsKg: emissionsKg,
		GridEmissionFactor: factor,
		CarbonOffset:       energyKWh * factor,
		EnergyPerPanel:     energyKWh / float64(in.PanelCount),
	}
	if res.EnergyPerPanel <= 0 {
		return OffsetResult{}, guard("energy_per_panel", res.EnergyPerPanel)
	}

	remaining := emissionsKg - res.CarbonOffset
	if remaining <= 0 {
		res.NetZeroReached = true
		return res, nil
	}

	res.RemainingEmissions = remaining
	res.AdditionalEnergyNeeded = remaining / factor
	res.AdditionalPanelsNeeded = res.AdditionalEnergyNeeded / res.EnergyPerPanel
	return res, nil
}

// resolveFactor substitutes the default for a zero factor and guards the
// divisor otherwise.
func resolveFactor(factor float64) (float64, error) {
	if factor == 0 {
		return DefaultGridEmissionFactor, nil
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return 0, guard("grid_emission_factor", factor)
	}
	return factor, nil
}
