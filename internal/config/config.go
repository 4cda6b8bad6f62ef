package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for snap.
type Config struct {
	WorkspaceID string        `toml:"workspace_id"`
	BaseDir     string        `toml:"base_dir"`
	LogDir      string        `toml:"log_dir"`
	Log         LogConfig     `toml:"log"`
	Display     DisplayConfig `toml:"display"`
	Import      ImportConfig  `toml:"import"`
}

// LogConfig controls the structured log written for every command.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info" (default), "warn" or "error"
	Stderr bool   `toml:"stderr"` // also write log lines to stderr
}

// DisplayConfig controls how checked-out trees are printed.
type DisplayConfig struct {
	Format      string `toml:"format"`          // "text" (default) or "yaml"
	ShowContent bool   `toml:"show_content"`    // print entry content previews in text format
	Width       int    `toml:"width,omitempty"` // 0 = detect from the terminal
}

// ImportConfig holds settings for importing directories as working trees.
type ImportConfig struct {
	Ignore      []string `toml:"ignore"`
	MaxFileSize int64    `toml:"max_file_size"` // bytes; larger files are skipped, defaults to 1MB
}

// NewConfig creates a new Config with the provided values and defaults.
func NewConfig(workspaceID, baseDir string) *Config {
	return &Config{
		WorkspaceID: workspaceID,
		BaseDir:     baseDir,
		LogDir:      filepath.Join(baseDir, "log"),
		Log:         LogConfig{Level: "info"},
		Display:     DisplayConfig{Format: "text"},
		Import:      ImportConfig{Ignore: []string{".git"}},
	}
}

var (
	logLevels      = []string{"", "debug", "info", "warn", "error"}
	displayFormats = []string{"", "text", "yaml"}
)

// Validate reports every problem with cfg at once. Empty level and format
// fall back to "info" and "text".
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.LogDir == "" {
		errs = append(errs, errors.New("log_dir is empty"))
	}
	if !slices.Contains(logLevels, strings.ToLower(cfg.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}
	if !slices.Contains(displayFormats, cfg.Display.Format) {
		errs = append(errs, fmt.Errorf("display.format %q is not one of text, yaml", cfg.Display.Format))
	}
	if cfg.Display.Width < 0 {
		errs = append(errs, fmt.Errorf("display.width %d is negative", cfg.Display.Width))
	}
	if cfg.Import.MaxFileSize < 0 {
		errs = append(errs, fmt.Errorf("import.max_file_size %d is negative", cfg.Import.MaxFileSize))
	}
	return errors.Join(errs...)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
// A missing file is reported with an error wrapping fs.ErrNotExist; a file
// that decodes but fails Validate is an error too.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
