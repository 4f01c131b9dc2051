// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/runoshun/planner/internal/calendar"
	"github.com/runoshun/planner/internal/domain"
	"github.com/runoshun/planner/internal/infra/config"
	"github.com/runoshun/planner/internal/infra/idgen"
	"github.com/runoshun/planner/internal/infra/logging"
	"github.com/runoshun/planner/internal/infra/memstore"
	"github.com/runoshun/planner/internal/infra/seedfile"
	"github.com/runoshun/planner/internal/scheduler"
	"github.com/runoshun/planner/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	WorkDir    string // Directory the planner was started in
	ConfigPath string // Path to the local config file
	DataDir    string // Path to the local data directory (logs)
}

// NewConfig derives the paths for dir. An empty configPath means
// <dir>/.planner/config.toml.
func NewConfig(dir, configPath string) Config {
	if configPath == "" {
		configPath = domain.LocalConfigPath(dir)
	}
	return Config{
		WorkDir:    dir,
		ConfigPath: configPath,
		DataDir:    domain.LocalDir(dir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store        domain.Store
	Seeds        domain.SeedSource
	IDs          domain.IDGenerator
	Clock        domain.Clock
	ConfigLoader domain.ConfigLoader
	ConfigMgr    domain.ConfigManager
	PlannerLog   domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	AppConfig *domain.Config
	Engine    *scheduler.Engine
	Projector *calendar.Projector
	Placer    *usecase.Placer
	fileLog   *logging.Logger

	// Configuration
	Config Config
}

// New creates a Container for dir, loading configuration from configPath
// (or the default local path) merged over the global config.
func New(dir, configPath string) (*Container, error) {
	cfg := NewConfig(dir, configPath)

	configLoader := config.NewLoader(cfg.ConfigPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	fileLog := logging.New(cfg.DataDir, level)

	seedPath := appConfig.Seed.Path
	if seedPath != "" && !filepath.IsAbs(seedPath) {
		seedPath = filepath.Join(dir, seedPath)
	}

	c, err := build(cfg, appConfig, memstore.New(), seedfile.NewSource(seedPath), idgen.UUID{}, domain.RealClock{}, fileLog, logger)
	if err != nil {
		return nil, err
	}
	c.ConfigLoader = configLoader
	c.ConfigMgr = config.NewManager(cfg.ConfigPath)
	c.fileLog = fileLog
	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, store domain.Store, seeds domain.SeedSource, ids domain.IDGenerator, clock domain.Clock, plannerLog domain.Logger) (*Container, error) {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if plannerLog == nil {
		plannerLog = domain.NopLogger{}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c, err := build(cfg, appConfig, store, seeds, ids, clock, plannerLog, logger)
	if err != nil {
		return nil, err
	}
	// Tests never touch the user's global config.
	c.ConfigMgr = config.NewManagerWithGlobalDir(cfg.ConfigPath, "")
	return c, nil
}

func build(cfg Config, appConfig *domain.Config, store domain.Store, seeds domain.SeedSource, ids domain.IDGenerator, clock domain.Clock, plannerLog domain.Logger, logger *slog.Logger) (*Container, error) {
	policy, err := scheduler.PolicyFromConfig(appConfig.Schedule)
	if err != nil {
		return nil, fmt.Errorf("schedule config: %w", err)
	}
	engine := scheduler.New(policy)
	projector := calendar.NewProjector(ids, appConfig.Schedule.DefaultColor)

	return &Container{
		Store:      store,
		Seeds:      seeds,
		IDs:        ids,
		Clock:      clock,
		PlannerLog: plannerLog,
		Logger:     logger,
		AppConfig:  appConfig,
		Engine:     engine,
		Projector:  projector,
		Placer:     usecase.NewPlacer(engine, projector, plannerLog),
		Config:     cfg,
	}, nil
}

// Bootstrap loads the configured seed into the store.
func (c *Container) Bootstrap(ctx context.Context) error {
	out, err := c.ResetSessionUseCase().Execute(ctx, usecase.ResetSessionInput{})
	if err != nil {
		return err
	}
	c.Logger.Debug("session bootstrapped", "projects", out.Projects, "tasks", out.Tasks, "events", out.Events)
	return nil
}

// Close releases the log file.
func (c *Container) Close() error {
	if c.fileLog == nil {
		return nil
	}
	return c.fileLog.Close()
}

// Location returns the time zone schedules are computed in.
func (c *Container) Location() *time.Location {
	return c.Engine.Policy().Location
}

// UseCase factory methods

// AddProjectUseCase returns a new AddProject use case.
func (c *Container) AddProjectUseCase() *usecase.AddProject {
	return usecase.NewAddProject(c.Store, c.IDs, c.Clock, c.PlannerLog)
}

// UpdateProjectUseCase returns a new UpdateProject use case.
func (c *Container) UpdateProjectUseCase() *usecase.UpdateProject {
	return usecase.NewUpdateProject(c.Store, c.Projector, c.Clock, c.PlannerLog)
}

// DeleteProjectUseCase returns a new DeleteProject use case.
func (c *Container) DeleteProjectUseCase() *usecase.DeleteProject {
	return usecase.NewDeleteProject(c.Store, c.Projector, c.PlannerLog)
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Store, c.Placer, c.IDs, c.Clock, c.PlannerLog)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Store, c.Placer, c.Clock, c.PlannerLog)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.Projector, c.PlannerLog)
}

// ScheduleTaskUseCase returns a new ScheduleTask use case.
func (c *Container) ScheduleTaskUseCase() *usecase.ScheduleTask {
	return usecase.NewScheduleTask(c.Store, c.Placer, c.Clock, c.PlannerLog, c.AppConfig.Schedule.RejectManualOverlap)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Store, c.Clock, c.PlannerLog)
}

// ToggleTaskAutoScheduleUseCase returns a new ToggleTaskAutoSchedule use case.
func (c *Container) ToggleTaskAutoScheduleUseCase() *usecase.ToggleTaskAutoSchedule {
	return usecase.NewToggleTaskAutoSchedule(c.Store, c.Clock, c.PlannerLog)
}

// ToggleTaskLockUseCase returns a new ToggleTaskLock use case.
func (c *Container) ToggleTaskLockUseCase() *usecase.ToggleTaskLock {
	return usecase.NewToggleTaskLock(c.Store, c.Placer, c.Clock, c.PlannerLog)
}

// AutoScheduleTasksUseCase returns a new AutoScheduleTasks use case.
func (c *Container) AutoScheduleTasksUseCase() *usecase.AutoScheduleTasks {
	return usecase.NewAutoScheduleTasks(c.Store, c.Placer, c.Clock, c.PlannerLog)
}

// ResetSessionUseCase returns a new ResetSession use case.
func (c *Container) ResetSessionUseCase() *usecase.ResetSession {
	return usecase.NewResetSession(c.Store, c.Seeds, c.Projector, c.Clock, c.PlannerLog)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store)
}

// ShowProjectUseCase returns a new ShowProject use case.
func (c *Container) ShowProjectUseCase() *usecase.ShowProject {
	return usecase.NewShowProject(c.Store)
}

// CheckAvailabilityUseCase returns a new CheckAvailability use case.
func (c *Container) CheckAvailabilityUseCase() *usecase.CheckAvailability {
	return usecase.NewCheckAvailability(c.Store)
}

// SnapshotUseCase returns a new Snapshot use case.
func (c *Container) SnapshotUseCase() *usecase.Snapshot {
	return usecase.NewSnapshot(c.Store)
}
