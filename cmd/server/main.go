package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardview/internal/boards"
	"boardview/internal/config"
	"boardview/internal/db"
	mcpserver "boardview/internal/mcp"
	"boardview/internal/viewer"
	"boardview/internal/web"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

//go:embed static
var staticFS embed.FS

const (
	sessionTTL   = 30 * time.Minute
	sweepEvery   = 5 * time.Minute
	startTimeout = 10 * time.Second
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		flags      config.Config
	)

	cmd := &cobra.Command{
		Use:          "boardview",
		Short:        "Read-only viewer for published boards",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&flags.MongoURI, "mongodb-uri", "", "MongoDB connection URI")
	cmd.Flags().StringVar(&flags.Database, "mongodb-database", "", "MongoDB database name")
	cmd.Flags().StringVarP(&flags.Port, "port", "p", "", "HTTP listen port")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", "", "log format (text|json)")

	return cmd
}

// applyFlags overrides cfg with every flag set on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("mongodb-uri", &cfg.MongoURI, flags.MongoURI)
	set("mongodb-database", &cfg.Database, flags.Database)
	set("port", &cfg.Port, flags.Port)
	set("log-level", &cfg.LogLevel, flags.LogLevel)
	set("log-format", &cfg.LogFormat, flags.LogFormat)
}

func run(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Logger
	logger := cfg.Logger()

	// Connect to MongoDB
	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	logger.Info("connecting to MongoDB", "uri", cfg.MongoURI, "database", cfg.Database)
	database, err := db.Connect(startCtx, cfg.MongoURI, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background(), database); err != nil {
			logger.Warn("failed to disconnect from MongoDB", "error", err)
		}
	}()
	logger.Info("connected to MongoDB")

	// Wire dependencies
	repo := boards.NewRepo(database)
	if err := repo.EnsureIndexes(startCtx); err != nil {
		logger.Warn("failed to ensure indexes", "error", err)
	}
	loader := viewer.NewLoader(repo, logger)
	sessions := web.NewSessions(repo, logger, sessionTTL)
	go sessions.Run(ctx, sweepEvery)
	handler := web.NewHandler(sessions, loader, boards.NewMarkdown(), logger)

	// Create MCP server
	mcpSrv := mcpserver.NewServer(loader)

	// HTTP router
	mux := http.NewServeMux()

	// Static files
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("failed to get static fs: %w", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	// REST API endpoints
	mux.HandleFunc("GET /api/boards", handler.ListBoards)
	mux.HandleFunc("GET /api/boards/{slug}", handler.GetBoard)

	// Web UI (read-only); the fragment router runs in the page script
	mux.HandleFunc("GET /", handler.Page)
	mux.HandleFunc("GET /fragments/view", handler.ViewFragment)
	mux.HandleFunc("GET /fragments/filter", handler.FilterFragment)
	mux.HandleFunc("GET /fragments/boards", handler.BoardsFragment)

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	mcpHTTP := server.NewStreamableHTTPServer(mcpSrv)
	mux.Handle("POST /mcp", mcpHTTP)
	mux.Handle("GET /mcp", mcpHTTP)
	mux.Handle("DELETE /mcp", mcpHTTP)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port)
	logger.Info("endpoints available",
		"web", "http://localhost:"+cfg.Port,
		"api", "http://localhost:"+cfg.Port+"/api/boards",
		"mcp", "http://localhost:"+cfg.Port+"/mcp",
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
