package solar

import (
	"errors"
	"fmt"
)

// Display names of the form fields, used in parse warnings.
const (
	FieldSolarPanels      = "solar panels"
	FieldEnergyProduction = "energy production"
	FieldCarbonEmissions  = "carbon emissions"
	FieldGridFactor       = "grid emission factor"
	FieldEnergyPerPanel   = "energy per panel"
	FieldCostPerPanel     = "cost per panel"
	FieldCostPerKWh       = "cost per kWh"
)

// Result labels.
const (
	LabelCarbonOffsetFmt       = "Total carbon offset from current %s panels"
	LabelRemainingEmissions    = "Remaining carbon emissions to offset"
	LabelAdditionalEnergy      = "Additional energy needed to offset remaining emissions"
	LabelEnergyPerPanel        = "Energy produced per panel"
	LabelAdditionalPanels      = "Additional solar panels needed"
	LabelStatus                = "Status"
	LabelCarbonOffsetPerPanel  = "Carbon offset per panel"
	LabelPanelsNeeded          = "Solar panels needed"
	LabelTotalInstallationCost = "Total installation cost"
	LabelPotentialSavings      = "Potential savings on energy bills"

	// MsgNoEnergy is shown when energy production is not positive.
	MsgNoEnergy = "Total energy production must be greater than zero."
)

// ResultLine is one labelled, formatted result value.
type ResultLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OffsetLines returns the display lines of an offset result. Carbon and energy
// values use precision decimals; panel counts are whole numbers. A net-zero
// result reports the offset and the status line only.
func OffsetLines(res OffsetResult, precision int) []ResultLine {
	offset := ResultLine{
		Label: fmt.Sprintf(LabelCarbonOffsetFmt, FormatNumber(int64(res.PanelCount))),
		Value: FormatFloat(res.CarbonOffset, precision) + " " + EmissionsKg.Label(),
	}
	if res.NetZeroReached {
		return []ResultLine{offset, {Label: LabelStatus, Value: NetZeroReachedTitle}}
	}
	return []ResultLine{
		offset,
		{Label: LabelRemainingEmissions, Value: FormatFloat(res.RemainingEmissions, precision) + " " + EmissionsKg.Label()},
		{Label: LabelAdditionalEnergy, Value: FormatFloat(res.AdditionalEnergyNeeded, precision) + " " + EnergyKWh.String()},
		{Label: LabelEnergyPerPanel, Value: FormatFloat(res.EnergyPerPanel, precision) + " " + EnergyKWh.String()},
		{Label: LabelAdditionalPanels, Value: FormatPanels(res.AdditionalPanelsNeeded)},
	}
}

// PlanLines returns the display lines of a plan result. Money is shown with
// two decimals and no currency symbol.
func PlanLines(res PlanResult, precision int) []ResultLine {
	const moneyPrecision = 2
	return []ResultLine{
		{Label: LabelCarbonOffsetPerPanel, Value: FormatFloat(res.CarbonOffsetPerPanel, precision) + " " + EmissionsKg.Label()},
		{Label: LabelPanelsNeeded, Value: FormatFloat(res.PanelsNeeded, precision)},
		{Label: LabelTotalInstallationCost, Value: FormatFloat(res.TotalInstallationCost, moneyPrecision)},
		{Label: LabelPotentialSavings, Value: FormatFloat(res.PotentialSavings, moneyPrecision)},
	}
}

// UserMessage turns a calculation error into the sentence shown to users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) && inputErr.Field == "energy_produced" && errors.Is(err, ErrInvalidInput) {
		return MsgNoEnergy
	}
	return err.Error()
}
