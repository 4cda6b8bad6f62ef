package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults are the paths snap uses when the config does not say otherwise.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults resolves default paths, preferring environment variables:
//   - SNAP_CONFIG_PATH: config file (default ~/.config/snap.toml)
//   - SNAP_HOME: data directory (default ~/.local/share/snap)
func GetDefaults() (*Defaults, error) {
	configPath, err := fromEnvOrHome("SNAP_CONFIG_PATH", ".config", "snap.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := fromEnvOrHome("SNAP_HOME", ".local", "share", "snap")
	if err != nil {
		return nil, err
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// fromEnvOrHome returns $env when set, else the home directory joined with rel.
func fromEnvOrHome(env string, rel ...string) (string, error) {
	if p := os.Getenv(env); p != "" {
		return p, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory for %s: %w", env, err)
	}
	return filepath.Join(append([]string{homeDir}, rel...)...), nil
}
