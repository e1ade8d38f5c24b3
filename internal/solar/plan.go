package solar

import "math"

// ComputePlan runs the from-scratch model: how many panels, each yielding
// EnergyPerPanel kWh, offset all current emissions, what they cost to
// install and what their energy saves on the electricity bill.
//
// It fails with ErrDivisionGuard when the carbon offset per panel would be
// zero or negative, and with ErrInvalidInput for negative emissions or costs.
func ComputePlan(in PlanInput) (PlanResult, error) {
	if !(in.CurrentEmissions >= 0) || math.IsInf(in.CurrentEmissions, 0) {
		return PlanResult{}, invalid("current_emissions", in.CurrentEmissions)
	}
	if !(in.CostPerPanel >= 0) || math.IsInf(in.CostPerPanel, 0) {
		return PlanResult{}, invalid("cost_per_panel", in.CostPerPanel)
	}
	if math.IsNaN(in.EnergyPerPanel) || math.IsInf(in.EnergyPerPanel, 0) {
		return PlanResult{}, invalid("energy_per_panel", in.EnergyPerPanel)
	}
	if in.EnergyPerPanel <= 0 {
		return PlanResult{}, guard("energy_per_panel", in.EnergyPerPanel)
	}

	emissionsUnit := in.EmissionsUnit
	if emissionsUnit == "" {
		emissionsUnit = EmissionsKg
	}
	emissionsKg, err := NormalizeEmissions(in.CurrentEmissions, emissionsUnit)
	if err != nil {
		return PlanResult{}, err
	}

	factor, err := resolveFactor(in.GridEmissionFactor)
	if err != nil {
		return PlanResult{}, err
	}

	costPerKWh := in.CostPerKWh
	if costPerKWh == 0 {
		costPerKWh = DefaultCostPerKWh
	}
	if !(costPerKWh > 0) || math.IsInf(costPerKWh, 0) {
		return PlanResult{}, invalid("cost_per_kwh", costPerKWh)
	}

	offsetPerPanel := in.EnergyPerPanel * factor
	if offsetPerPanel <= 0 {
		return PlanResult{}, guard("carbon_offset_per_panel", offsetPerPanel)
	}

	panels := emissionsKg / offsetPerPanel
	return PlanResult{
		EnergyPerPanel:        in.EnergyPerPanel,
		CostPerPanel:          in.CostPerPanel,
		CurrentEmissionsKg:    emissionsKg,
		GridEmissionFactor:    factor,
		CostPerKWh:            costPerKWh,
		CarbonOffsetPerPanel:  offsetPerPanel,
		PanelsNeeded:          panels,
		TotalInstallationCost: panels * in.CostPerPanel,
		PotentialSavings:      panels * in.EnergyPerPanel * costPerKWh,
	}, nil
}
