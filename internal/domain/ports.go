package domain

import (
	"time"
)

// Tx is a view over the entity collections inside a single store operation.
// Lists are returned in insertion order.
type Tx interface {
	// Project returns a project by ID.
	Project(id string) (Project, bool)
	// Projects returns all projects.
	Projects() []Project
	// PutProject inserts or replaces a project.
	PutProject(p Project)
	// DeleteProject removes a project. Missing IDs are ignored.
	DeleteProject(id string)

	// Task returns a task by ID.
	Task(id string) (Task, bool)
	// Tasks returns all tasks.
	Tasks() []Task
	// PutTask inserts or replaces a task.
	PutTask(t Task)
	// DeleteTask removes a task. Missing IDs are ignored.
	DeleteTask(id string)

	// Event returns an event by ID.
	Event(id string) (CalendarEvent, bool)
	// EventForTask returns the event derived from the given task.
	EventForTask(taskID string) (CalendarEvent, bool)
	// Events returns all events.
	Events() []CalendarEvent
	// PutEvent inserts or replaces an event.
	PutEvent(e CalendarEvent)
	// DeleteEvent removes an event. Missing IDs are ignored.
	DeleteEvent(id string)
}

// Store owns the entity collections.
// Update runs fn with exclusive access and commits only if fn returns nil.
type Store interface {
	View(fn func(tx Tx) error) error
	Update(fn func(tx Tx) error) error
	// Load replaces all state with the seed.
	Load(seed Seed)
	// Subscribe registers fn to receive a snapshot after every commit.
	// The returned func removes the subscription.
	Subscribe(fn func(Snapshot)) (unsubscribe func())
}

// Snapshot is a copy of all collections at a point in time.
type Snapshot struct {
	Projects []Project
	Tasks    []Task
	Events   []CalendarEvent
}

// Seed is the initial state a session is bootstrapped from.
type Seed struct {
	Projects []Project       `json:"projects" yaml:"projects"`
	Tasks    []Task          `json:"tasks" yaml:"tasks"`
	Events   []CalendarEvent `json:"events" yaml:"events"`
}

// SeedSource provides the seed used for bootstrap and reset.
type SeedSource interface {
	// Seed returns the seed relative to now.
	Seed(now time.Time) (Seed, error)
}

// IDGenerator creates identities for new entities.
type IDGenerator interface {
	NewID() string
}

// Logger records planner activity.
// entityID may be empty for global messages.
type Logger interface {
	Info(entityID, category, msg string)
	Debug(entityID, category, msg string)
	Warn(entityID, category, msg string)
	Error(entityID, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

// Info implements Logger.
func (NopLogger) Info(string, string, string) {}

// Debug implements Logger.
func (NopLogger) Debug(string, string, string) {}

// Warn implements Logger.
func (NopLogger) Warn(string, string, string) {}

// Error implements Logger.
func (NopLogger) Error(string, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default + global + local).
	Load() (*Config, error)
}

// ConfigInfo describes one config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// LocalConfigInfo returns the per-directory config file.
	LocalConfigInfo() ConfigInfo
	// GlobalConfigInfo returns the user-wide config file.
	GlobalConfigInfo() ConfigInfo
	// InitLocalConfig writes the template to the local path.
	InitLocalConfig(force bool) (string, error)
	// InitGlobalConfig writes the template to the global path.
	InitGlobalConfig(force bool) (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
