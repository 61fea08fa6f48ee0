package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lumeng/mindmirror/internal/config"
	"github.com/lumeng/mindmirror/internal/domain/activity"
	"github.com/lumeng/mindmirror/internal/domain/audit"
	"github.com/lumeng/mindmirror/internal/domain/contact"
	"github.com/lumeng/mindmirror/internal/domain/event"
	"github.com/lumeng/mindmirror/internal/domain/project"
	"github.com/lumeng/mindmirror/internal/domain/summary"
	"github.com/lumeng/mindmirror/internal/mcp"
	"github.com/lumeng/mindmirror/internal/reminder"
	"github.com/lumeng/mindmirror/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Server.Transport == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	contactRepo := sqlite.NewContactRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	eventRepo := sqlite.NewEventRepository(db)
	summaryRepo := sqlite.NewSummaryRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	projectSvc := project.NewService(projectRepo, auditRepo, logger)
	contactSvc := contact.NewService(contactRepo, auditRepo, logger)
	activitySvc := activity.NewService(activityRepo, auditRepo, logger)
	eventSvc := event.NewService(eventRepo, contactRepo, auditRepo, logger)
	summarySvc := summary.NewService(summaryRepo, eventRepo, auditRepo, logger)
	auditSvc := audit.NewService(auditRepo, logger)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:   projectSvc,
			Contacts:   contactSvc,
			Activities: activitySvc,
			Events:     eventSvc,
			Summaries:  summarySvc,
			Audits:     auditSvc,
		},
		ExportDir: cfg.Export.Dir,
		Logger:    logger,
	})

	// Background poll: due reminders and scheduled summaries.
	pollCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	poller := reminder.NewPoller(eventSvc, summarySvc, reminder.LogNotifier{Logger: logger}, cfg.Reminder.Interval, logger)
	go poller.Run(pollCtx)

	if cfg.Server.Transport == "stdio" {
		runStdioMode(logger, mcpServer)
	} else {
		runHTTPMode(logger, mcpServer, cfg.Server.Host, cfg.Server.Port)
	}
}

func runStdioMode(logger *slog.Logger, mcpServer *sdkmcp.Server) {
	logger.Info("starting stdio transport")

	transport := &sdkmcp.StdioTransport{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, transport); err != nil {
		logger.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, mcpServer *sdkmcp.Server, host string, port int) {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: 30 * time.Minute,
		},
	)

	router := http.NewServeMux()
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/", mcpHandler)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
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
