package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
)

// NewConfigGetCmd creates the config get command printing one value of the
// effective configuration.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print a configuration value",
		Example: `  netzero config get calculator.cost_per_kwh
  netzero config get server`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

// NewConfigSetCmd creates the config set command. It edits the file layer
// only: the project overlay inside a project, the global file otherwise.
func NewConfigSetCmd() *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Example: `  netzero config set calculator.grid_factor_preset uk
  netzero config set output.default_format json
  netzero config set --global server.rate_limit 50`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFile(global)
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			cmd.Printf("Set %s = %s in %s\n", args[0], args[1], cfg.ConfigPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "edit the global configuration even inside a project")
	return cmd
}

// NewConfigListCmd creates the config list command printing every effective value.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lines, err := config.GetGlobalConfig().List()
			if err != nil {
				return err
			}
			for _, l := range lines {
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// loadConfigFile loads the file config set edits, without environment
// overrides, or the defaults when the file does not exist yet.
func loadConfigFile(global bool) (*config.Config, error) {
	path, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	if dir := config.GetResolvedProjectDir(); dir != "" && !global {
		path = filepath.Join(dir, "config.yaml")
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		cfg := config.Defaults()
		cfg.SetConfigPath(path)
		return cfg, nil
	}
	return config.Load(path)
}
