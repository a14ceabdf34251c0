package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".feedcleaner"

// LoadFile loads a configuration file from the given path.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this error based on whether the path was explicitly
// specified by the user.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Profiles == nil {
		cf.Profiles = make(map[string]Profile)
	}

	return &cf, nil
}

// FindFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .feedcleaner in the current directory
//  3. Look for .feedcleaner in the user's home directory
//  4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Save persists the current settings to path in the background.
// Saving is fire-and-forget: it is triggered on every user-facing
// setting change, and a failed save must never interrupt feed
// processing, so failures are logged and not returned.
func Save(path string, s Settings, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		if err := writeFile(path, s); err != nil {
			logger.Warn("failed to save settings", "path", path, "error", err)
		}
	}()
}

// writeFile serializes the settings snapshot to path as YAML, creating
// parent directories as needed.
func writeFile(path string, s Settings) error {
	data, err := yaml.Marshal(File{Settings: snapshot(s)})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}
