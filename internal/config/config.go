// Package config loads, validates and persists netzero configuration.
//
// Values are layered: built-in defaults, the global file
// ($NETZERO_HOME/config.yaml), an optional project overlay
// (.netzero/config.yaml), then NETZERO_* environment variables. A .env file
// can seed the environment without overriding variables already set.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/netzero/internal/solar"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1.0.0"

// Output formats accepted by output.default_format.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

const outputTypeFile = "file"

// Config is the full netzero configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Calculator CalculatorConfig `yaml:"calculator"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
	Report     ReportConfig     `yaml:"report"`

	configPath string
	loadErrs   []error
}

// CalculatorConfig holds the calculation factors and the form defaults.
type CalculatorConfig struct {
	// GridFactorPreset names an entry of solar.GridFactorPresets.
	GridFactorPreset string `yaml:"grid_factor_preset"`
	// GridEmissionFactor overrides the preset when positive.
	GridEmissionFactor float64 `yaml:"grid_emission_factor"`
	CostPerKWh         float64 `yaml:"cost_per_kwh"`
	CostPerPanel       float64 `yaml:"cost_per_panel"`
	EnergyUnit         string  `yaml:"energy_unit"`
	EmissionsUnit      string  `yaml:"emissions_unit"`

	PanelCount       int     `yaml:"panel_count"`
	EnergyProduced   float64 `yaml:"energy_produced"`
	CurrentEmissions float64 `yaml:"current_emissions"`
	EnergyPerPanel   float64 `yaml:"energy_per_panel"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Precision     int    `yaml:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	RateLimit       float64       `yaml:"rate_limit"`
	Burst           int           `yaml:"burst"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ReportConfig sets report metadata.
type ReportConfig struct {
	Author string `yaml:"author"`
	Title  string `yaml:"title"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Version: CurrentVersion,
		Calculator: CalculatorConfig{
			GridFactorPreset: solar.DefaultGridPreset,
			CostPerKWh:       solar.DefaultCostPerKWh,
			CostPerPanel:     250,
			EnergyUnit:       solar.EnergyKWh.String(),
			EmissionsUnit:    solar.EmissionsKg.String(),
			PanelCount:       3805,
			EnergyProduced:   50000,
			CurrentEmissions: 500000,
			EnergyPerPanel:   400,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     solar.CarbonPrecision,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       20,
			Burst:           40,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Report: ReportConfig{
			Author: "netzero",
			Title:  "Solar Net-Zero Report",
		},
	}
}

// New returns the global configuration layered with the environment.
// Problems reading the file are kept and reported by Validate.
func New() *Config {
	return NewWithProjectDir(context.Background(), "")
}

// Load reads path on top of the defaults and fails on any read or parse error.
// The environment is not applied.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// ConfigPath returns where Save writes.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// GridFactor resolves the effective grid emission factor: an explicit
// positive factor wins over the preset.
func (c *Config) GridFactor() (float64, error) {
	if c.Calculator.GridEmissionFactor > 0 {
		return c.Calculator.GridEmissionFactor, nil
	}
	return solar.GridFactor(c.Calculator.GridFactorPreset)
}

// EnergyUnit returns the configured default energy unit.
func (c *Config) EnergyUnit() (solar.EnergyUnit, error) {
	return solar.ParseEnergyUnit(c.Calculator.EnergyUnit)
}

// EmissionsUnit returns the configured default emissions unit.
func (c *Config) EmissionsUnit() (solar.EmissionsUnit, error) {
	return solar.ParseEmissionsUnit(c.Calculator.EmissionsUnit)
}
