// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/planner/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	localPath     string // Path to the local config file
	globalConfDir string // Path to global config directory (e.g., ~/.config/planner)
}

// NewLoader creates a Loader for the given local config file.
func NewLoader(localPath string) *Loader {
	return &Loader{
		localPath:     localPath,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(localPath, globalConfDir string) *Loader {
	return &Loader{
		localPath:     localPath,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDir(configHome)
}

// Load returns the merged configuration: default <- global <- local.
// Missing files are skipped; a malformed file is an error.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	paths := []string{}
	if l.globalConfDir != "" {
		paths = append(paths, filepath.Join(l.globalConfDir, domain.ConfigFileName))
	}
	if l.localPath != "" {
		paths = append(paths, l.localPath)
	}

	for _, path := range paths {
		ly, err := loadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		ly.apply(cfg)
	}

	if err := cfg.Schedule.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// layer is one parsed config file. Nil fields were not set.
type layer struct {
	dayStart, dayEnd, buffer     *int
	timezone, defaultColor       *string
	anchorCompleted, rejectOverl *bool
	seedPath                     *string
	logLevel                     *string
	warnings                     []string
}

func (ly *layer) apply(cfg *domain.Config) {
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	setInt(&cfg.Schedule.DayStart, ly.dayStart)
	setInt(&cfg.Schedule.DayEnd, ly.dayEnd)
	setInt(&cfg.Schedule.BufferMinutes, ly.buffer)
	setString(&cfg.Schedule.Timezone, ly.timezone)
	setString(&cfg.Schedule.DefaultColor, ly.defaultColor)
	setBool(&cfg.Schedule.AnchorIncludesCompleted, ly.anchorCompleted)
	setBool(&cfg.Schedule.RejectManualOverlap, ly.rejectOverl)
	setString(&cfg.Seed.Path, ly.seedPath)
	setString(&cfg.Log.Level, ly.logLevel)
	cfg.Warnings = append(cfg.Warnings, ly.warnings...)
}

// loadFile parses a configuration file into a layer.
func loadFile(path string) (*layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	return convertRaw(raw), nil
}

// convertRaw converts the raw map to a layer and collects warnings.
func convertRaw(raw map[string]any) *layer {
	ly := &layer{}
	var warnings []string
	wrongType := func(section, key string) {
		warnings = append(warnings, fmt.Sprintf("invalid value type in [%s]: %s", section, key))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "schedule":
			for k, v := range m {
				switch k {
				case "day_start", "day_end", "buffer_minutes":
					n, ok := v.(int64)
					if !ok {
						wrongType(section, k)
						continue
					}
					i := int(n)
					switch k {
					case "day_start":
						ly.dayStart = &i
					case "day_end":
						ly.dayEnd = &i
					default:
						ly.buffer = &i
					}
				case "timezone", "default_color":
					s, ok := v.(string)
					if !ok {
						wrongType(section, k)
						continue
					}
					if k == "timezone" {
						ly.timezone = &s
					} else {
						ly.defaultColor = &s
					}
				case "anchor_includes_completed", "reject_manual_overlap":
					b, ok := v.(bool)
					if !ok {
						wrongType(section, k)
						continue
					}
					if k == "anchor_includes_completed" {
						ly.anchorCompleted = &b
					} else {
						ly.rejectOverl = &b
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [schedule]: %s", k))
				}
			}
		case "seed":
			for k, v := range m {
				switch k {
				case "path":
					if s, ok := v.(string); ok {
						ly.seedPath = &s
					} else {
						wrongType(section, k)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [seed]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						ly.logLevel = &s
					} else {
						wrongType(section, k)
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	ly.warnings = warnings
	return ly
}
