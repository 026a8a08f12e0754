package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/studylog/studylog/internal/config"
	"github.com/studylog/studylog/internal/domain/progress"
	"github.com/studylog/studylog/internal/domain/resource"
	"github.com/studylog/studylog/internal/domain/task"
	"github.com/studylog/studylog/internal/domain/user"
	"github.com/studylog/studylog/internal/mcp"
	"github.com/studylog/studylog/internal/stats"
	"github.com/studylog/studylog/internal/storage"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries JSON-RPC.
	logWriter := io.Writer(os.Stderr)
	if logPath := os.Getenv("STUDYLOG_LOG_PATH"); logPath != "" {
		file, err := openLogFile(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = file
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	db, err := storage.Open(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := storage.NewStore(db, logger)

	loc, err := loadLocation(cfg.Stats.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", "timezone", cfg.Stats.Timezone, "error", err)
		os.Exit(1)
	}
	aggregator := stats.NewWithClock(loc, time.Now)

	taskSvc := task.NewService(store, logger)
	resourceSvc := resource.NewService(store, taskSvc, logger)
	userSvc := user.NewService(store, logger)
	progressSvc := progress.NewService(store, taskSvc, userSvc, aggregator, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Tasks:     taskSvc,
			Resources: resourceSvc,
			Progress:  progressSvc,
			Users:     userSvc,
		},
		Logger: logger,
	})

	runStdio(logger, mcpServer)
}

func runStdio(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or the context is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
