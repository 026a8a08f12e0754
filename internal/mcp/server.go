package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/studylog/studylog/internal/domain/progress"
	"github.com/studylog/studylog/internal/domain/resource"
	"github.com/studylog/studylog/internal/domain/task"
	"github.com/studylog/studylog/internal/domain/user"
	"github.com/studylog/studylog/internal/stats"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `studylog tracks study tasks, learning resources and logged study
sessions for a local user base, and derives statistics from them: daily,
weekly and monthly rollups, activity heatmaps and goal progress. Create a
user first, then tasks, then log progress against them.`

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context, userID string) ([]task.Task, error)
	Update(ctx context.Context, id string, req task.UpdateRequest) (*task.Task, error)
	Complete(ctx context.Context, id string) (*task.Task, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, userID, term string) ([]task.Task, error)
}

// ResourceService defines resource operations needed by MCP.
type ResourceService interface {
	Create(ctx context.Context, req resource.CreateRequest) (*resource.Resource, error)
	List(ctx context.Context, userID string) ([]resource.Resource, error)
	Update(ctx context.Context, id string, req resource.UpdateRequest) (*resource.Resource, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, userID, term string) ([]resource.Resource, error)
}

// ProgressService defines progress and statistics operations needed by MCP.
type ProgressService interface {
	Log(ctx context.Context, req progress.LogRequest) (*progress.Entry, error)
	List(ctx context.Context, userID string) ([]progress.Entry, error)
	Delete(ctx context.Context, id string) error
	DeleteForTask(ctx context.Context, taskID string) (int, error)
	Summary(ctx context.Context, userID string) (*stats.Summary, error)
	Heatmap(ctx context.Context, userID string, days int) ([]stats.HeatmapEntry, error)
	Goals(ctx context.Context, userID string) (stats.GoalReport, error)
}

// UserService defines user operations needed by MCP.
type UserService interface {
	Create(ctx context.Context, req user.CreateRequest) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	SetGoals(ctx context.Context, id string, targets stats.GoalTargets) (*user.User, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tasks     TaskService
	Resources ResourceService
	Progress  ProgressService
	Users     UserService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "studylog",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(loggingMiddleware(cfg.Logger))

	registerTools(server, cfg.Services)

	return server
}

// loggingMiddleware logs every request with its duration.
func loggingMiddleware(logger *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			res, err := next(ctx, method, req)
			if logger != nil {
				logger.Debug("mcp request",
					"method", method,
					"duration", time.Since(start),
					"error", err)
			}
			return res, err
		}
	}
}
