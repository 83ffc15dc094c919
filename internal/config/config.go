package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable report settings. None of them are exposed as
// command-line flags. TopProcesses must be positive; an omitted key keeps
// the default of 5.
type Config struct {
	TopProcesses      int           `yaml:"top_processes"`
	CPUSampleInterval time.Duration `yaml:"cpu_sample_interval"`
	AllPartitions     bool          `yaml:"all_partitions"`
	QueryTimeout      time.Duration `yaml:"query_timeout"`
	NoColor           bool          `yaml:"no_color"`
	LogLevel          string        `yaml:"log_level"`
	SysfsRoot         string        `yaml:"sysfs_root"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		TopProcesses:      5,
		CPUSampleInterval: 0,
		AllPartitions:     false,
		QueryTimeout:      10 * time.Second,
		NoColor:           false,
		LogLevel:          "warn",
		SysfsRoot:         "/sys",
	}
}

// Path returns $SYSREPORT_CONFIG, or config.yaml under $XDG_CONFIG_HOME/sysreport
// (falling back to ~/.config). Returns "" if no location can be determined.
func Path() string {
	if p := os.Getenv("SYSREPORT_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sysreport", "config.yaml")
}

// Load reads the config at Path. A missing file is not an error.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads path over the defaults. On a parse error the defaults are
// returned together with the error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := loaded.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return loaded, nil
}

func (c Config) Validate() error {
	if c.TopProcesses < 1 {
		return fmt.Errorf("top_processes must be at least 1, got %d", c.TopProcesses)
	}
	if c.CPUSampleInterval < 0 {
		return fmt.Errorf("cpu_sample_interval must not be negative, got %s", c.CPUSampleInterval)
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query_timeout must not be negative, got %s", c.QueryTimeout)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps log_level to a slog level, defaulting to warn.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log_level %q", s)
	}
}
