// Package cli implements the netzero command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the netzero CLI.
// It loads .env files and configuration, wires logging and tracing, and
// registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "netzero",
		Short: "Solar panel calculator for net-zero carbon emissions",
		Long: `netzero estimates how much carbon your solar panels already offset and how
many more panels it takes to reach net-zero carbon emissions.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.LoadDotEnv()
			if err != nil {
				cmd.PrintErrf("Warning: %v\n", err)
			}

			cwd, _ := os.Getwd()
			dir := config.ResolveProjectDir(cmd.Context(), projectDir, cwd)
			config.SetResolvedProjectDir(dir)
			config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), dir))

			result := setupLogging(cmd)
			logResult = &result
			if len(loaded) > 0 {
				logger.Debug().Ctx(cmd.Context()).Strs("files", loaded).Msg("loaded .env files")
			}
			if dir != "" {
				logger.Debug().Ctx(cmd.Context()).Str("project_dir", dir).Msg("using project configuration")
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project directory holding .netzero/config.yaml (default: nearest ancestor with .netzero)")
	cmd.PersistentFlags().Bool("plain", false, "plain text output without colors")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	cmd.AddCommand(
		NewOffsetCmd(), NewPlanCmd(), NewInteractiveCmd(), NewReportCmd(),
		NewBatchCmd(), NewServeCmd(), NewUnitsCmd(), NewGridFactorsCmd(),
		newConfigCmd(),
	)
	return cmd
}

const rootCmdExample = `  # How far are 3,805 panels producing 50 MWh from offsetting 500 t of CO2?
  netzero offset --panels 3805 --energy 50 --energy-unit MWh --emissions 500 --emissions-unit tons

  # Plan an installation from scratch
  netzero plan --energy-per-panel 400 --cost-per-panel 250 --emissions 5000

  # Interactive calculator
  netzero interactive

  # Export a PDF report
  netzero report --format pdf --out report.pdf --panels 3805 --energy 50000 --emissions 500000

  # Evaluate every scenario in a workbook
  netzero batch --in scenarios.xlsx --out results.xlsx

  # Serve the JSON API
  netzero serve --addr :8080

  # Initialize configuration
  netzero config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
