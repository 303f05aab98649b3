// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Vlab-Corporation/claude-config-installer/internal/domain"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/config"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/gitctx"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/idgen"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/jsonstore"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/logging"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/mailbox"
	"github.com/Vlab-Corporation/claude-config-installer/internal/infra/tasklist"
	"github.com/Vlab-Corporation/claude-config-installer/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	QueueDir string // Directory holding tasks.json, history.json and the mailbox
	WorkDir  string // Working copy inspected for context matching
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.QueueRepository
	Mailbox       domain.Mailbox
	Clock         domain.Clock
	IDs           domain.IDGenerator
	Workspace     domain.WorkspaceInspector
	TaskLists     domain.TaskListReader
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	QueueLog      domain.Logger

	// Pointer fields
	Logger *slog.Logger

	// Configuration
	Config Config
}

// New creates a new Container for the queue directory selected by flagDir,
// QUEUE_DIR, the global config or the default under the home directory.
func New(flagDir string) (*Container, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	global, _ := config.NewLoader("").LoadGlobal() // missing or broken global config falls back to defaults
	queueDir, err := filepath.Abs(resolveQueueDir(flagDir, os.Getenv(domain.EnvQueueDir), global, home))
	if err != nil {
		return nil, fmt.Errorf("resolve queue directory: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get current directory: %w", err)
	}
	cfg := Config{QueueDir: queueDir, WorkDir: workDir}

	configLoader := config.NewLoader(queueDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// Reported again by the commands that need the config
		appConfig = domain.NewDefaultConfig()
	}
	level := logging.ParseLevel(appConfig.Log.Level)

	clock := domain.RealClock{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &Container{
		Tasks:         jsonstore.New(queueDir),
		Mailbox:       mailbox.New(queueDir, appConfig.Continuation.TTL, clock),
		Clock:         clock,
		IDs:           idgen.UUID{},
		Workspace:     gitctx.New(workDir),
		TaskLists:     tasklist.Reader{},
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(queueDir),
		QueueLog:      logging.New(queueDir, level),
		Logger:        logger,
		Config:        cfg,
	}, nil
}

// resolveQueueDir picks the queue directory: flag, then environment, then
// the global config, then ~/.claude/queue.
func resolveQueueDir(flagDir, envDir string, global *domain.Config, home string) string {
	switch {
	case flagDir != "":
		return flagDir
	case envDir != "":
		return envDir
	case global != nil && global.Queue.Dir != "":
		return global.Queue.Dir
	default:
		return domain.DefaultQueueDir(home)
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// Ports not given are bound to the real adapters rooted at cfg.QueueDir, with
// no global config.
func NewWithDeps(cfg Config, tasks domain.QueueRepository, mb domain.Mailbox, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Tasks:         tasks,
		Mailbox:       mb,
		Clock:         clock,
		IDs:           idgen.UUID{},
		Workspace:     gitctx.New(cfg.WorkDir),
		TaskLists:     tasklist.Reader{},
		ConfigLoader:  config.NewLoaderWithGlobalDir(cfg.QueueDir, ""),
		ConfigManager: config.NewManagerWithGlobalDir(cfg.QueueDir, ""),
		QueueLog:      logging.New("", slog.LevelInfo),
		Logger:        logger,
		Config:        cfg,
	}
}

// Close releases the log files.
func (c *Container) Close() error {
	if l, ok := c.QueueLog.(*logging.Logger); ok {
		return l.Close()
	}
	return nil
}

// UseCase factory methods

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks, c.ConfigLoader, c.IDs, c.Clock, c.QueueLog)
}

// AddResolvedTaskUseCase returns a new AddResolvedTask use case.
func (c *Container) AddResolvedTaskUseCase() *usecase.AddResolvedTask {
	return usecase.NewAddResolvedTask(c.Tasks, c.ConfigLoader, c.IDs, c.Clock, c.QueueLog)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// CancelTaskUseCase returns a new CancelTask use case.
func (c *Container) CancelTaskUseCase() *usecase.CancelTask {
	return usecase.NewCancelTask(c.Tasks, c.Clock, c.QueueLog)
}

// NextTaskUseCase returns a new NextTask use case.
func (c *Container) NextTaskUseCase() *usecase.NextTask {
	return usecase.NewNextTask(c.Tasks)
}

// StartTaskUseCase returns a new StartTask use case.
func (c *Container) StartTaskUseCase() *usecase.StartTask {
	return usecase.NewStartTask(c.Tasks, c.Clock, c.QueueLog)
}

// CompleteTaskUseCase returns a new CompleteTask use case.
func (c *Container) CompleteTaskUseCase() *usecase.CompleteTask {
	return usecase.NewCompleteTask(c.Tasks, c.Mailbox, c.ConfigLoader, c.IDs, c.Clock, c.QueueLog)
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.Tasks, c.QueueLog)
}

// QueueStatusUseCase returns a new QueueStatus use case.
func (c *Container) QueueStatusUseCase() *usecase.QueueStatus {
	return usecase.NewQueueStatus(c.Tasks, c.Clock)
}

// DependTaskUseCase returns a new DependTask use case.
func (c *Container) DependTaskUseCase() *usecase.DependTask {
	return usecase.NewDependTask(c.Tasks, c.QueueLog)
}

// UnblockTaskUseCase returns a new UnblockTask use case.
func (c *Container) UnblockTaskUseCase() *usecase.UnblockTask {
	return usecase.NewUnblockTask(c.Tasks, c.QueueLog)
}

// AnalyzeTasksUseCase returns a new AnalyzeTasks use case.
func (c *Container) AnalyzeTasksUseCase() *usecase.AnalyzeTasks {
	return usecase.NewAnalyzeTasks(c.Tasks, c.ConfigLoader, c.TaskLists, c.IDs, c.Clock, c.QueueLog)
}

// PlanQueueUseCase returns a new PlanQueue use case.
func (c *Container) PlanQueueUseCase() *usecase.PlanQueue {
	return usecase.NewPlanQueue(c.Tasks)
}

// AnalyzeConflictUseCase returns a new AnalyzeConflict use case.
func (c *Container) AnalyzeConflictUseCase() *usecase.AnalyzeConflict {
	return usecase.NewAnalyzeConflict(c.Tasks)
}

// HookStopUseCase returns a new HookStop use case.
func (c *Container) HookStopUseCase() *usecase.HookStop {
	return usecase.NewHookStop(c.Tasks, c.Mailbox, c.ConfigLoader, c.Workspace, c.Clock, c.QueueLog)
}

// HookSessionStartUseCase returns a new HookSessionStart use case.
func (c *Container) HookSessionStartUseCase() *usecase.HookSessionStart {
	return usecase.NewHookSessionStart(c.Tasks, c.Mailbox, c.Clock)
}

// HookPromptSubmitUseCase returns a new HookPromptSubmit use case.
func (c *Container) HookPromptSubmitUseCase() *usecase.HookPromptSubmit {
	return usecase.NewHookPromptSubmit(c.Tasks, c.Mailbox, c.QueueLog)
}

// MatchContextUseCase returns a new MatchContext use case.
func (c *Container) MatchContextUseCase() *usecase.MatchContext {
	return usecase.NewMatchContext(c.Tasks, c.ConfigLoader, c.Workspace)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowLogsUseCase returns a new ShowLogs use case.
func (c *Container) ShowLogsUseCase() *usecase.ShowLogs {
	return usecase.NewShowLogs(c.Tasks, c.Config.QueueDir)
}
