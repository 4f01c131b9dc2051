// Package seedfile reads and writes session seeds as YAML or JSON files.
package seedfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/runoshun/planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// format identifies a seed encoding.
type format int

const (
	formatYAML format = iota
	formatJSON
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedSeedExt, filepath.Ext(path))
	}
}

// Read loads a seed from path. The encoding is chosen by extension.
func Read(path string) (domain.Seed, error) {
	f, err := formatFor(path)
	if err != nil {
		return domain.Seed{}, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Seed{}, fmt.Errorf("read seed file: %w", err)
	}

	var seed domain.Seed
	switch f {
	case formatJSON:
		err = json.Unmarshal(content, &seed)
	default:
		err = yaml.Unmarshal(content, &seed)
	}
	if err != nil {
		return domain.Seed{}, fmt.Errorf("parse seed file: %w", err)
	}

	if err := Validate(seed); err != nil {
		return domain.Seed{}, err
	}
	return seed, nil
}

// Write stores seed at path atomically (temp file + rename).
func Write(path string, seed domain.Seed) error {
	content, err := Encode(path, seed)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Encode renders seed in the encoding implied by path's extension.
func Encode(path string, seed domain.Seed) ([]byte, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	var content []byte
	switch f {
	case formatJSON:
		content, err = json.MarshalIndent(seed, "", "  ")
	default:
		content, err = yaml.Marshal(seed)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal seed: %w", err)
	}
	return content, nil
}

// Validate checks the structural invariants of a seed.
func Validate(seed domain.Seed) error {
	for _, p := range seed.Projects {
		if p.ID == "" {
			return fmt.Errorf("seed project %q: missing id", p.Title)
		}
		if p.Priority != "" && !p.Priority.IsValid() {
			return fmt.Errorf("seed project %s: %w: %q", p.ID, domain.ErrInvalidPriority, p.Priority)
		}
	}
	for _, t := range seed.Tasks {
		if t.ID == "" {
			return fmt.Errorf("seed task %q: missing id", t.Title)
		}
		if t.Priority != "" && !t.Priority.IsValid() {
			return fmt.Errorf("seed task %s: %w: %q", t.ID, domain.ErrInvalidPriority, t.Priority)
		}
		if (t.ScheduledStart == nil) != (t.ScheduledEnd == nil) {
			return fmt.Errorf("seed task %s: scheduledStart and scheduledEnd must be set together", t.ID)
		}
	}
	byTask := make(map[string]string, len(seed.Events))
	for _, e := range seed.Events {
		if e.ID == "" {
			return fmt.Errorf("seed event %q: missing id", e.Title)
		}
		if e.TaskID == "" {
			continue
		}
		if prev, dup := byTask[e.TaskID]; dup {
			return fmt.Errorf("seed events %s and %s: both derived from task %s", prev, e.ID, e.TaskID)
		}
		byTask[e.TaskID] = e.ID
	}
	return nil
}

// Source loads the seed from a file, or the built-in sample when path is empty.
type Source struct {
	path string
}

// Ensure Source implements domain.SeedSource.
var _ domain.SeedSource = (*Source)(nil)

// NewSource creates a Source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Seed returns the seed. The built-in sample is generated relative to now.
func (s *Source) Seed(now time.Time) (domain.Seed, error) {
	if s.path == "" {
		return domain.SampleSeed(now), nil
	}
	return Read(s.path)
}
