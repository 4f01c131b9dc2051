package domain

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented default configuration file.
func ConfigTemplate() string {
	return configTemplateContent
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Schedule ScheduleConfig `toml:"schedule"`
	Seed     SeedConfig     `toml:"seed"`
	Log      LogConfig      `toml:"log"`
}

// ScheduleConfig holds working-hours policy from the [schedule] section.
// Fields are ordered to minimize memory padding.
type ScheduleConfig struct {
	Timezone                string `toml:"timezone,omitempty"`      // IANA name or "Local"
	DefaultColor            string `toml:"default_color,omitempty"` // Fallback event color
	DayStart                int    `toml:"day_start,omitempty"`     // First working hour (inclusive)
	DayEnd                  int    `toml:"day_end,omitempty"`       // Last working hour (exclusive)
	BufferMinutes           int    `toml:"buffer_minutes,omitempty"`
	AnchorIncludesCompleted bool   `toml:"anchor_includes_completed,omitempty"`
	RejectManualOverlap     bool   `toml:"reject_manual_overlap,omitempty"`
}

// Buffer returns the gap inserted before every engine placement.
func (c ScheduleConfig) Buffer() time.Duration {
	return time.Duration(c.BufferMinutes) * time.Minute
}

// Location resolves Timezone. Empty and "Local" map to time.Local.
func (c ScheduleConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks the working-day bounds.
func (c ScheduleConfig) Validate() error {
	if c.DayStart < 0 || c.DayEnd > 24 || c.DayStart >= c.DayEnd {
		return fmt.Errorf("%w: %d-%d", ErrInvalidWorkingDay, c.DayStart, c.DayEnd)
	}
	return nil
}

// SeedConfig holds bootstrap settings from the [seed] section.
type SeedConfig struct {
	Path string `toml:"path,omitempty"` // Seed file; empty = built-in sample
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// Default configuration values.
const (
	DefaultDayStart      = 9
	DefaultDayEnd        = 17
	DefaultBufferMinutes = 30
	DefaultLogLevel      = "info"
)

// Directory and file names for the planner.
const (
	AppDirName     = "planner"     // Directory name under XDG_CONFIG_HOME
	LocalDirName   = ".planner"    // Per-directory data directory
	ConfigFileName = "config.toml" // Config file name
	LogFileName    = "planner.log" // Log file name
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart:      DefaultDayStart,
			DayEnd:        DefaultDayEnd,
			BufferMinutes: DefaultBufferMinutes,
			Timezone:      "Local",
			DefaultColor:  DefaultEventColor,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// GlobalDir returns the global planner directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalDir(configHome), ConfigFileName)
}

// LocalDir returns the data directory under dir.
func LocalDir(dir string) string {
	return filepath.Join(dir, LocalDirName)
}

// LocalConfigPath returns the config path under dir.
func LocalConfigPath(dir string) string {
	return filepath.Join(LocalDir(dir), ConfigFileName)
}

// LogPath returns the log file path inside a data directory.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", LogFileName)
}
