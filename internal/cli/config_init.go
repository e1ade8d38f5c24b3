package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a resolved .netzero directory) it writes the project
// overlay and a .gitignore; otherwise, or with --global, the global
// ~/.netzero/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project (a directory tree with a .netzero directory, or one named with
--project-dir or NETZERO_PROJECT_DIR) it creates .netzero/config.yaml with a
.gitignore that keeps .env files, logs and exported reports out of version
control. Use --global to initialize ~/.netzero/config.yaml instead.`,
		Example: `  # Create project-local configuration
  netzero config init --project-dir .

  # Create global configuration
  netzero config init --global

  # Create configuration, overwriting existing
  netzero config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := config.GetResolvedProjectDir()
			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "initialize the global configuration even inside a project")

	return cmd
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkExisting(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Defaults()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Never overwrites an existing .gitignore.
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep .env, logs and reports out of version control\n")
	}
	return nil
}

// initGlobalConfig creates global config at ~/.netzero/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := globalConfigPath()
	if err != nil {
		return err
	}
	if err = checkExisting(path, force); err != nil {
		return err
	}

	if err = config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := config.Defaults()
	cfg.SetConfigPath(path)
	if err = cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}

func checkExisting(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errors.New("configuration file already exists, use --force to overwrite")
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

func globalConfigPath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
