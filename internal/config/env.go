package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override configuration values.
const (
	EnvHome          = "NETZERO_HOME"
	EnvProjectDir    = "NETZERO_PROJECT_DIR"
	EnvGridPreset    = "NETZERO_GRID_PRESET"
	EnvGridFactor    = "NETZERO_GRID_FACTOR"
	EnvCostPerKWh    = "NETZERO_COST_PER_KWH"
	EnvCostPerPanel  = "NETZERO_COST_PER_PANEL"
	EnvEnergyUnit    = "NETZERO_ENERGY_UNIT"
	EnvEmissionsUnit = "NETZERO_EMISSIONS_UNIT"
	EnvOutputFormat  = "NETZERO_OUTPUT_FORMAT"
	EnvLogLevel      = "NETZERO_LOG_LEVEL"
	EnvLogFormat     = "NETZERO_LOG_FORMAT"
	EnvLogFile       = "NETZERO_LOG_FILE"
	EnvServerAddr    = "NETZERO_SERVER_ADDR"
	EnvRateLimit     = "NETZERO_RATE_LIMIT"
	EnvRateBurst     = "NETZERO_RATE_BURST"
	EnvReadTimeout   = "NETZERO_READ_TIMEOUT"
)

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set are never overridden. Missing files are skipped. With no
// paths it loads ".env" in the working directory and in the config directory.
func LoadDotEnv(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{".env"}
		if dir, err := GetConfigDir(); err == nil {
			paths = append(paths, filepath.Join(dir, ".env"))
		}
	}

	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, fmt.Errorf("loading %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// applyEnv overlays NETZERO_* variables. Unparsable numbers are recorded and
// surface from Validate.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	float := func(name string, dst *float64) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.loadErrs = append(c.loadErrs, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, name, v))
			return
		}
		*dst = f
	}
	integer := func(name string, dst *int) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			c.loadErrs = append(c.loadErrs, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, name, v))
			return
		}
		*dst = n
	}
	duration := func(name string, dst *time.Duration) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			c.loadErrs = append(c.loadErrs, fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, name, v))
			return
		}
		*dst = d
	}

	str(EnvGridPreset, &c.Calculator.GridFactorPreset)
	float(EnvGridFactor, &c.Calculator.GridEmissionFactor)
	float(EnvCostPerKWh, &c.Calculator.CostPerKWh)
	float(EnvCostPerPanel, &c.Calculator.CostPerPanel)
	str(EnvEnergyUnit, &c.Calculator.EnergyUnit)
	str(EnvEmissionsUnit, &c.Calculator.EmissionsUnit)
	str(EnvOutputFormat, &c.Output.DefaultFormat)
	str(EnvLogLevel, &c.Logging.Level)
	str(EnvLogFormat, &c.Logging.Format)
	str(EnvLogFile, &c.Logging.File)
	str(EnvServerAddr, &c.Server.Addr)
	float(EnvRateLimit, &c.Server.RateLimit)
	integer(EnvRateBurst, &c.Server.Burst)
	duration(EnvReadTimeout, &c.Server.ReadTimeout)
}
