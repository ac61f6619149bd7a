// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Salon   SalonConfig   `toml:"salon"`
	Grid    GridConfig    `toml:"grid"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// SalonConfig holds opening hours and salon identity.
type SalonConfig struct {
	Name      string `toml:"name"`       // shown in the calendar title
	OpenTime  string `toml:"open_time"`  // e.g., "08:00"
	CloseTime string `toml:"close_time"` // e.g., "21:00"
}

// GridConfig holds calendar grid settings.
type GridConfig struct {
	SlotMinutes int `toml:"slot_minutes"` // snap granularity: 5, 10, 15, 20, 30, or 60
	Days        int `toml:"days"`         // days shown side by side (1-7)
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Salon: SalonConfig{
			Name:      "peluq",
			OpenTime:  "08:00",
			CloseTime: "21:00",
		},
		Grid: GridConfig{
			SlotMinutes: 15,
			Days:        3,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "peluq.db"
	}
	return filepath.Join(home, ".local", "share", "peluq", "peluq.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "peluq", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PELUQ_OPEN_TIME"); v != "" {
		cfg.Salon.OpenTime = v
	}
	if v := os.Getenv("PELUQ_CLOSE_TIME"); v != "" {
		cfg.Salon.CloseTime = v
	}
	if v := os.Getenv("PELUQ_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("PELUQ_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// validSlotMinutes are the snap granularities that divide an hour evenly.
var validSlotMinutes = map[int]bool{5: true, 10: true, 15: true, 20: true, 30: true, 60: true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Salon.OpenTime, "open_time"); err != nil {
		return err
	}
	if err := validateTime(c.Salon.CloseTime, "close_time"); err != nil {
		return err
	}
	if c.Salon.OpenTime >= c.Salon.CloseTime {
		return errors.New("open_time must be before close_time")
	}
	if !validSlotMinutes[c.Grid.SlotMinutes] {
		return fmt.Errorf("slot_minutes must divide an hour evenly, got %d", c.Grid.SlotMinutes)
	}
	if c.Grid.Days < 1 || c.Grid.Days > 7 {
		return fmt.Errorf("days must be between 1 and 7, got %d", c.Grid.Days)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// validateTime checks that value is a valid HH:MM time.
func validateTime(value, field string) error {
	if len(value) != 5 {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, value)
	}
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, value)
	}
	return nil
}

// OpenHour returns the opening hour of the salon.
func (c *Config) OpenHour() int {
	return parseHour(c.Salon.OpenTime)
}

// TotalHours returns the visible span of the day in hours, rounding a
// partial last hour up so the closing slot stays reachable.
func (c *Config) TotalHours() int {
	openMins := parseHour(c.Salon.OpenTime)*60 + parseMinute(c.Salon.OpenTime)
	closeMins := parseHour(c.Salon.CloseTime)*60 + parseMinute(c.Salon.CloseTime)
	span := closeMins - openMins
	hours := span / 60
	if span%60 != 0 {
		hours++
	}
	return hours
}

func parseHour(hhmm string) int {
	if len(hhmm) < 5 {
		return 0
	}
	return int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
}

func parseMinute(hhmm string) int {
	if len(hhmm) < 5 {
		return 0
	}
	return int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
}
