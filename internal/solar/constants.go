package solar

// Calculator defaults.
const (
	// DefaultGridEmissionFactor is kg CO2 emitted per kWh drawn from the grid.
	// Energy produced by panels offsets this amount of carbon per kWh.
	DefaultGridEmissionFactor = 0.417

	// DefaultCostPerKWh is the electricity price used to estimate savings.
	DefaultCostPerKWh = 0.267

	// MaxPanelCount bounds panel counts accepted from text.
	MaxPanelCount = 1<<31 - 1
)

// Energy unit multipliers to kilowatt-hours.
const (
	KWhToKWh = 1.0
	MWhToKWh = 1_000.0
	GWhToKWh = 1_000_000.0
)

// Emissions unit multipliers to kilograms CO2.
const (
	KgToKg   = 1.0
	TonsToKg = 1_000.0
)

// EPA equivalency factors (2024 edition), in kg CO2e per unit of activity.
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed per tree seedling over 10 years.
	EPATreeSeedlingFactor = 60.0

	// EPAHomeDayFactor is kg CO2e per day of average US home electricity.
	EPAHomeDayFactor = 18.3
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest offset that gets equivalencies.
	// Below it the equivalencies round to nothing meaningful.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold switches FormatLarge to "~X.X million".
	LargeNumberThreshold = 1_000_000

	// BillionThreshold switches FormatLarge to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// Chart presentation, matching the original pie chart.
const (
	ChartTitle          = "Carbon Offset vs. Remaining Emissions"
	OffsetLabel         = "Carbon Offset"
	RemainingLabel      = "Remaining Emissions"
	OffsetColorHex      = "#ff9999"
	RemainingColorHex   = "#66b3ff"
	percentMultiplier   = 100
	NetZeroReachedTitle = "Net-Zero Carbon Emissions reached"
)
