package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		Long: `Validates the effective configuration: the global file, the project overlay
and NETZERO_* environment variables.

This includes:
- File syntax and schema version compatibility
- Grid factor preset and explicit factor
- Energy and emissions units
- Costs, output format and precision
- Logging level and format
- Server rate limit and timeouts`,
		Example: `  # Validate current configuration
  netzero config validate

  # Validate and show detailed information
  netzero config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")
	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	factor, _ := cfg.GridFactor()

	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Grid emission factor: %s kg CO₂/kWh (preset %s)\n",
		formatFactor(factor), cfg.Calculator.GridFactorPreset)
	cmd.Printf("  Cost per kWh: %s\n", formatFactor(cfg.Calculator.CostPerKWh))
	cmd.Printf("  Units: %s, %s\n", cfg.Calculator.EnergyUnit, cfg.Calculator.EmissionsUnit)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Server: %s (%s req/s, burst %d)\n",
		cfg.Server.Addr, formatFactor(cfg.Server.RateLimit), cfg.Server.Burst)
}
