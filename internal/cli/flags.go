package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/solar"
)

// offsetFlags are the existing-panel inputs shared by offset and report.
// Numbers are kept as text so they go through the same parsing as the
// interactive form.
type offsetFlags struct {
	panels        string
	energy        string
	energyUnit    string
	emissions     string
	emissionsUnit string
	gridFactor    string
	gridPreset    string
	lenient       bool
}

func (f *offsetFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.panels, "panels", "", "current number of solar panels (default from config)")
	fl.StringVar(&f.energy, "energy", "", "total energy produced (default from config)")
	fl.StringVar(&f.energyUnit, "energy-unit", "", "energy unit: kWh, MWh or GWh (default from config)")
	fl.StringVar(&f.emissions, "emissions", "", "current total carbon emissions (default from config)")
	fl.StringVar(&f.emissionsUnit, "emissions-unit", "", "emissions unit: kg or tons (default from config)")
	fl.StringVar(&f.gridFactor, "grid-factor", "", "grid emission factor in kg CO2 per kWh")
	fl.StringVar(&f.gridPreset, "grid-preset", "", "grid emission factor preset, see 'netzero grid-factors'")
	fl.BoolVar(&f.lenient, "lenient", false, "fall back to the configured default for values that are not numbers")
	cmd.MarkFlagsMutuallyExclusive("grid-factor", "grid-preset")
}

// resolve builds the calculation input. Unset flags take the configured
// defaults. Text that is not a number fails, or with --lenient falls back to
// the default and adds a warning.
func (f *offsetFlags) resolve(cfg *config.Config) (solar.OffsetInput, []string, error) {
	var (
		in       solar.OffsetInput
		warnings []string
		err      error
	)
	r := resolver{lenient: f.lenient, warnings: &warnings}
	calc := cfg.Calculator

	panels, err := r.number("panels", solar.FieldSolarPanels, f.panels, float64(calc.PanelCount))
	if err != nil {
		return in, warnings, err
	}
	if !solar.IsPanelCount(panels) {
		if !f.lenient {
			return in, warnings, fmt.Errorf("--panels: %w", &solar.ParseError{Field: "panel_count", Text: f.panels})
		}
		warnings = append(warnings, solar.InvalidNumberWarning(solar.FieldSolarPanels))
		panels = float64(calc.PanelCount)
	}
	in.PanelCount = int(panels)

	if in.EnergyProduced, err = r.number("energy", solar.FieldEnergyProduction, f.energy, calc.EnergyProduced); err != nil {
		return in, warnings, err
	}
	if in.CurrentEmissions, err = r.number("emissions", solar.FieldCarbonEmissions, f.emissions, calc.CurrentEmissions); err != nil {
		return in, warnings, err
	}
	if in.EnergyUnit, err = energyUnit(f.energyUnit, cfg); err != nil {
		return in, warnings, err
	}
	if in.EmissionsUnit, err = emissionsUnit(f.emissionsUnit, cfg); err != nil {
		return in, warnings, err
	}
	in.GridEmissionFactor, err = gridFactor(r, f.gridFactor, f.gridPreset, cfg)
	return in, warnings, err
}

// planFlags are the from-scratch plan inputs.
type planFlags struct {
	energyPerPanel string
	costPerPanel   string
	emissions      string
	emissionsUnit  string
	costPerKWh     string
	gridFactor     string
	gridPreset     string
	lenient        bool
}

func (f *planFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.energyPerPanel, "energy-per-panel", "", "kWh one panel produces over the emissions period (default from config)")
	fl.StringVar(&f.costPerPanel, "cost-per-panel", "", "installed cost of one panel (default from config)")
	fl.StringVar(&f.emissions, "emissions", "", "current total carbon emissions (default from config)")
	fl.StringVar(&f.emissionsUnit, "emissions-unit", "", "emissions unit: kg or tons (default from config)")
	fl.StringVar(&f.costPerKWh, "cost-per-kwh", "", "electricity price per kWh (default from config)")
	fl.StringVar(&f.gridFactor, "grid-factor", "", "grid emission factor in kg CO2 per kWh")
	fl.StringVar(&f.gridPreset, "grid-preset", "", "grid emission factor preset, see 'netzero grid-factors'")
	fl.BoolVar(&f.lenient, "lenient", false, "fall back to the configured default for values that are not numbers")
	cmd.MarkFlagsMutuallyExclusive("grid-factor", "grid-preset")
}

func (f *planFlags) resolve(cfg *config.Config) (solar.PlanInput, []string, error) {
	var (
		in       solar.PlanInput
		warnings []string
		err      error
	)
	r := resolver{lenient: f.lenient, warnings: &warnings}
	calc := cfg.Calculator

	if in.EnergyPerPanel, err = r.number("energy-per-panel", solar.FieldEnergyPerPanel, f.energyPerPanel, calc.EnergyPerPanel); err != nil {
		return in, warnings, err
	}
	if in.CostPerPanel, err = r.number("cost-per-panel", solar.FieldCostPerPanel, f.costPerPanel, calc.CostPerPanel); err != nil {
		return in, warnings, err
	}
	if in.CurrentEmissions, err = r.number("emissions", solar.FieldCarbonEmissions, f.emissions, calc.CurrentEmissions); err != nil {
		return in, warnings, err
	}
	if in.CostPerKWh, err = r.number("cost-per-kwh", solar.FieldCostPerKWh, f.costPerKWh, calc.CostPerKWh); err != nil {
		return in, warnings, err
	}
	if in.EmissionsUnit, err = emissionsUnit(f.emissionsUnit, cfg); err != nil {
		return in, warnings, err
	}
	in.GridEmissionFactor, err = gridFactor(r, f.gridFactor, f.gridPreset, cfg)
	return in, warnings, err
}

type resolver struct {
	lenient  bool
	warnings *[]string
}

// number parses a numeric flag. Empty text selects fallback.
func (r resolver) number(flag, field, text string, fallback float64) (float64, error) {
	if text == "" {
		return fallback, nil
	}
	if !r.lenient {
		v, err := solar.ParseNumber(text)
		if err != nil {
			return 0, fmt.Errorf("--%s: %w", flag, err)
		}
		return v, nil
	}
	res := solar.ResolveField(field, text, fallback)
	if res.Warning != "" {
		*r.warnings = append(*r.warnings, res.Warning)
	}
	return res.Value, nil
}

func energyUnit(flag string, cfg *config.Config) (solar.EnergyUnit, error) {
	if flag == "" {
		return cfg.EnergyUnit()
	}
	u, err := solar.ParseEnergyUnit(flag)
	if err != nil {
		return "", fmt.Errorf("--energy-unit: %w", err)
	}
	return u, nil
}

func emissionsUnit(flag string, cfg *config.Config) (solar.EmissionsUnit, error) {
	if flag == "" {
		return cfg.EmissionsUnit()
	}
	u, err := solar.ParseEmissionsUnit(flag)
	if err != nil {
		return "", fmt.Errorf("--emissions-unit: %w", err)
	}
	return u, nil
}

// gridFactor resolves --grid-factor, then --grid-preset, then the configured factor.
func gridFactor(r resolver, factorText, preset string, cfg *config.Config) (float64, error) {
	if preset != "" {
		f, err := solar.GridFactor(preset)
		if err != nil {
			return 0, fmt.Errorf("--grid-preset: %w", err)
		}
		return f, nil
	}
	fallback, err := cfg.GridFactor()
	if err != nil {
		return 0, err
	}
	return r.number("grid-factor", solar.FieldGridFactor, factorText, fallback)
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
