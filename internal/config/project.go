package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/netzero/internal/logging"
)

// ProjectDirName is the project-local configuration directory.
const ProjectDirName = ".netzero"

// resolvedProjectDir holds the project directory found at startup.
var (
	resolvedProjectDir   string       //nolint:gochecknoglobals // Set once at startup, read by config loaders
	resolvedProjectDirMu sync.RWMutex //nolint:gochecknoglobals // Protects resolvedProjectDir
)

// SetResolvedProjectDir stores the resolved project directory for use by other config functions.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the stored resolved project directory.
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}

// ResolveProjectDir determines the project-local .netzero directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. NETZERO_PROJECT_DIR env var
//  3. the nearest ancestor of startDir that contains a .netzero directory
//
// Returns the absolute path of that .netzero directory, or "" when none is
// found. The home config directory is never treated as a project.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	home, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != home {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir loads the global config, shallow-merges the project
// overlay from projectDir when present, then applies the environment.
// Load and merge failures are logged and kept for Validate.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := Defaults()

	path, err := defaultConfigPath()
	if err != nil {
		cfg.loadErrs = append(cfg.loadErrs, err)
	} else {
		cfg.configPath = path
		if _, statErr := os.Stat(path); statErr == nil {
			if loadErr := cfg.loadFile(path); loadErr != nil {
				logFailure(ctx, "load_global_config", path, loadErr)
				cfg.loadErrs = append(cfg.loadErrs, loadErr)
			}
		}
	}

	if projectDir != "" {
		overlayPath := filepath.Join(projectDir, "config.yaml")
		if _, statErr := os.Stat(overlayPath); statErr == nil {
			// Merge onto a copy so a broken overlay leaves the global config intact.
			merged := *cfg
			if mergeErr := ShallowMergeYAML(&merged, overlayPath); mergeErr != nil {
				logFailure(ctx, "merge_project_config", overlayPath, mergeErr)
				cfg.loadErrs = append(cfg.loadErrs, mergeErr)
			} else {
				cfg = &merged
			}
		}
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg
}

func logFailure(ctx context.Context, operation, path string, err error) {
	logger := logging.FromContext(ctx)
	logger.Warn().
		Str("component", "config").
		Str("operation", operation).
		Err(err).
		Str("path", path).
		Msg("failed to read configuration, using defaults for it")
}

// toAbsProjectDir converts dir to an absolute path and appends ".netzero"
// unless it already ends with it.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}

	return filepath.Join(abs, ProjectDirName)
}
