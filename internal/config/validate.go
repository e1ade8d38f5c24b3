package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/rshade/netzero/internal/solar"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// SupportedVersions is the range of config schema versions this build reads.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

const maxPrecision = 6

// Validate reports every problem with the configuration, including errors
// met while loading it.
func (c *Config) Validate() error {
	errs := append([]error(nil), c.loadErrs...)
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidConfig}, args...)...))
	}

	if err := CheckVersion(c.Version); err != nil {
		errs = append(errs, err)
	}

	calc := c.Calculator
	if _, err := solar.GridFactor(calc.GridFactorPreset); err != nil {
		add("calculator.grid_factor_preset: %v", err)
	}
	if calc.GridEmissionFactor < 0 || math.IsNaN(calc.GridEmissionFactor) {
		add("calculator.grid_emission_factor must be positive or 0 for the preset, got %g", calc.GridEmissionFactor)
	}
	if !(calc.CostPerKWh > 0) {
		add("calculator.cost_per_kwh must be positive, got %g", calc.CostPerKWh)
	}
	if calc.CostPerPanel < 0 {
		add("calculator.cost_per_panel must not be negative, got %g", calc.CostPerPanel)
	}
	if _, err := solar.ParseEnergyUnit(calc.EnergyUnit); err != nil {
		add("calculator.energy_unit: %v", err)
	}
	if _, err := solar.ParseEmissionsUnit(calc.EmissionsUnit); err != nil {
		add("calculator.emissions_unit: %v", err)
	}
	if calc.PanelCount < 0 {
		add("calculator.panel_count must not be negative, got %d", calc.PanelCount)
	}
	if calc.EnergyProduced < 0 || calc.CurrentEmissions < 0 || calc.EnergyPerPanel < 0 {
		add("calculator defaults must not be negative")
	}

	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		add("output.default_format %q (want table, json or ndjson)", c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		add("output.precision must be between 0 and %d, got %d", maxPrecision, c.Output.Precision)
	}

	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
			add("logging.level %q", c.Logging.Level)
		}
	}
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		add("logging.format %q (want json or console)", c.Logging.Format)
	}

	if c.Server.Addr == "" {
		add("server.addr must be set")
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		add("server.rate_limit and server.burst must not be negative")
	}

	return errors.Join(errs...)
}

// CheckVersion verifies a config schema version is supported. An empty
// version is read as the current one.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: version %q is not semver: %w", ErrInvalidConfig, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: version %s is not in supported range %s", ErrInvalidConfig, v, SupportedVersions)
	}
	return nil
}
