// Package solar estimates the solar panels needed to offset carbon emissions.
//
// It holds the pure calculation core: unit normalization, the existing-panel
// offset model (ComputeOffset), the from-scratch planning model (ComputePlan),
// number parsing for form fields and the chart proportions handed to renderers.
// Nothing in this package logs, reads files or touches the environment.
package solar

// EnergyUnit is the unit energy production is entered in.
type EnergyUnit string

// Supported energy units.
const (
	EnergyKWh EnergyUnit = "kWh"
	EnergyMWh EnergyUnit = "MWh"
	EnergyGWh EnergyUnit = "GWh"
)

// EnergyUnits lists the energy units in display order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var EnergyUnits = []EnergyUnit{EnergyKWh, EnergyMWh, EnergyGWh}

// String returns the unit symbol.
func (u EnergyUnit) String() string { return string(u) }

// EmissionsUnit is the unit carbon emissions are entered in.
type EmissionsUnit string

// Supported emissions units.
const (
	EmissionsKg   EmissionsUnit = "kg"
	EmissionsTons EmissionsUnit = "tons"
)

// EmissionsUnits lists the emissions units in display order.
//
//nolint:gochecknoglobals // Fixed lookup table.
var EmissionsUnits = []EmissionsUnit{EmissionsKg, EmissionsTons}

// String returns the unit symbol.
func (u EmissionsUnit) String() string { return string(u) }

// Label returns the display label, e.g. "tons CO₂".
func (u EmissionsUnit) Label() string { return string(u) + " CO₂" }

// OffsetInput is the input of the existing-panel model.
// Energy and emissions are given in their entry units and normalized before use.
type OffsetInput struct {
	// PanelCount is the number of panels currently installed.
	PanelCount int `json:"panel_count"`

	// EnergyProduced is the total energy those panels produced.
	EnergyProduced float64    `json:"energy_produced"`
	EnergyUnit     EnergyUnit `json:"energy_unit"`

	// CurrentEmissions is the total carbon emitted by the site.
	CurrentEmissions float64       `json:"current_emissions"`
	EmissionsUnit    EmissionsUnit `json:"emissions_unit"`

	// GridEmissionFactor is kg CO2 per kWh. Zero selects DefaultGridEmissionFactor.
	GridEmissionFactor float64 `json:"grid_emission_factor,omitempty"`
}

// OffsetResult is the output of the existing-panel model.
// All carbon values are kg CO2 and all energy values are kWh.
type OffsetResult struct {
	PanelCount         int     `json:"panel_count"`
	EnergyProducedKWh  float64 `json:"energy_produced_kwh"`
	CurrentEmissionsKg float64 `json:"current_emissions_kg"`
	GridEmissionFactor float64 `json:"grid_emission_factor"`

	CarbonOffset           float64 `json:"carbon_offset"`
	RemainingEmissions     float64 `json:"remaining_emissions"`
	AdditionalEnergyNeeded float64 `json:"additional_energy_needed"`
	EnergyPerPanel         float64 `json:"energy_per_panel"`
	AdditionalPanelsNeeded float64 `json:"additional_panels_needed"`
	NetZeroReached         bool    `json:"net_zero_reached"`
}

// PlanInput is the input of the from-scratch model.
type PlanInput struct {
	// EnergyPerPanel is the kWh one panel produces over the emissions period.
	EnergyPerPanel float64 `json:"energy_per_panel"`

	// CostPerPanel is the installed cost of one panel.
	CostPerPanel float64 `json:"cost_per_panel"`

	CurrentEmissions float64       `json:"current_emissions"`
	EmissionsUnit    EmissionsUnit `json:"emissions_unit"`

	// GridEmissionFactor is kg CO2 per kWh. Zero selects DefaultGridEmissionFactor.
	GridEmissionFactor float64 `json:"grid_emission_factor,omitempty"`

	// CostPerKWh is the electricity price. Zero selects DefaultCostPerKWh.
	CostPerKWh float64 `json:"cost_per_kwh,omitempty"`
}

// PlanResult is the output of the from-scratch model.
type PlanResult struct {
	EnergyPerPanel        float64 `json:"energy_per_panel"`
	CostPerPanel          float64 `json:"cost_per_panel"`
	CurrentEmissionsKg    float64 `json:"current_emissions_kg"`
	GridEmissionFactor    float64 `json:"grid_emission_factor"`
	CostPerKWh            float64 `json:"cost_per_kwh"`
	CarbonOffsetPerPanel  float64 `json:"carbon_offset_per_panel"`
	PanelsNeeded          float64 `json:"panels_needed"`
	TotalInstallationCost float64 `json:"total_installation_cost"`
	PotentialSavings      float64 `json:"potential_savings"`
}

// ChartSlice is one wedge of the offset pie chart.
type ChartSlice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// ChartData is the (offset, remaining) proportion pair handed to chart renderers.
type ChartData struct {
	Title     string     `json:"title"`
	Offset    ChartSlice `json:"offset"`
	Remaining ChartSlice `json:"remaining"`
}

// Total returns the sum of both slices.
func (c ChartData) Total() float64 {
	return c.Offset.Value + c.Remaining.Value
}

// Slices returns the slices in drawing order.
func (c ChartData) Slices() []ChartSlice {
	return []ChartSlice{c.Offset, c.Remaining}
}
