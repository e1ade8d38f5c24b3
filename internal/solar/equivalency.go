package solar

import (
	"fmt"
	"math"
	"strings"
)

// EquivalencyType is a category of carbon equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota
	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged
	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings
	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable name of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// Equivalency is one real-world comparison for an amount of carbon.
type Equivalency struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

type equivalencyDef struct {
	kind   EquivalencyType
	factor float64
	label  string
}

//nolint:gochecknoglobals // Read-only lookup table.
var equivalencyDefs = []equivalencyDef{
	{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
	{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
	{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
}

// Equivalencies expresses kg of carbon as EPA equivalencies.
// Amounts below MinEquivalencyThresholdKg, NaN or infinite return nil.
func Equivalencies(kg float64) []Equivalency {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinEquivalencyThresholdKg {
		return nil
	}
	out := make([]Equivalency, 0, len(equivalencyDefs))
	for _, d := range equivalencyDefs {
		v := kg / d.factor
		out = append(out, Equivalency{
			Type:           d.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          d.label,
		})
	}
	return out
}

// EquivalencyText renders equivalencies as one prose line, e.g.
// "Equivalent to ~108,594 miles driven or ~2.5 million smartphones charged".
// Only the first two equivalencies are used.
func EquivalencyText(eqs []Equivalency) string {
	if len(eqs) == 0 {
		return ""
	}
	const maxParts = 2
	parts := make([]string, 0, maxParts)
	for i, e := range eqs {
		if i == maxParts {
			break
		}
		value := e.FormattedValue
		if !strings.HasPrefix(value, "~") {
			value = "~" + value
		}
		parts = append(parts, value+" "+e.Label)
	}
	return "Equivalent to " + strings.Join(parts, " or ")
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
