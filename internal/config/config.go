// Package config provides YAML-based configuration loading for weeklytask.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"weeklytask/internal/storage"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "WEEKLYTASK_CONFIG"

// DefaultGrades are the grade labels offered when the config does not list any.
var DefaultGrades = []string{
	"小学1年生", "小学2年生", "小学3年生", "小学4年生", "小学5年生", "小学6年生",
	"中学1年生", "中学2年生", "中学3年生",
}

// DefaultColors is the task color palette.
var DefaultColors = []string{
	"#2563EB", "#7C3AED", "#DB2777", "#DC2626",
	"#EA580C", "#CA8A04", "#16A34A", "#0891B2",
}

// Config is the top-level weeklytask configuration, loaded from config.yaml.
type Config struct {
	DBPath           string   `yaml:"db_path"`
	StorageKey       string   `yaml:"storage_key"`
	LogLevel         string   `yaml:"log_level"`
	SnapshotLimit    int      `yaml:"snapshot_limit"`
	DefaultWeekStart *int     `yaml:"default_week_start"`
	DefaultUnit      string   `yaml:"default_unit"`
	Grades           []string `yaml:"grades"`
	Colors           []string `yaml:"colors"`
}

// DefaultPath returns $WEEKLYTASK_CONFIG or ~/.weeklytask/config.yaml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".weeklytask", "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML config file from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WeekStart returns the configured default week start.
func (c *Config) WeekStart() int {
	if c.DefaultWeekStart == nil {
		return storage.DefaultWeekStart
	}
	return *c.DefaultWeekStart
}

// KnownGrade reports whether grade is one of the configured labels.
func (c *Config) KnownGrade(grade string) bool {
	for _, g := range c.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.StorageKey == "" {
		c.StorageKey = storage.DefaultStorageKey
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.SnapshotLimit == 0 {
		c.SnapshotLimit = 50
	}
	if c.DefaultUnit == "" {
		c.DefaultUnit = "ページ"
	}
	if len(c.Grades) == 0 {
		c.Grades = append([]string(nil), DefaultGrades...)
	}
	if len(c.Colors) == 0 {
		c.Colors = append([]string(nil), DefaultColors...)
	}
}

func (c *Config) validate() error {
	var errs []string
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q is not one of debug|info|warn|error", c.LogLevel))
	}
	if c.SnapshotLimit < 0 {
		errs = append(errs, "snapshot_limit must not be negative")
	}
	if ws := c.WeekStart(); ws < 0 || ws > 6 {
		errs = append(errs, fmt.Sprintf("default_week_start %d is outside 0-6", ws))
	}
	for i, col := range c.Colors {
		if !strings.HasPrefix(col, "#") || (len(col) != 4 && len(col) != 7) {
			errs = append(errs, fmt.Sprintf("colors[%d] %q is not a hex color", i, col))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
