package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sketchroom/internal/config"
	"sketchroom/internal/game"
	"sketchroom/internal/ranking"
	"sketchroom/internal/store"
	httpTransport "sketchroom/internal/transport/http"
	"sketchroom/internal/transport/ws"
)

func main() {
	// Load .env if present, then configuration
	godotenv.Load()
	cfg := config.Load()

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	logger.Info("starting sketchroom game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Set up storage: postgres when configured, seeded in-memory otherwise
	var (
		users     game.Directory
		words     game.WordSource
		lister    ranking.UserLister
		snapshots ranking.SnapshotStore
	)
	if cfg.Database.PostgresURL != "" {
		pg, err := store.NewPostgresStore(context.Background(), cfg.Database.PostgresURL)
		if err != nil {
			logger.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		users, words, lister, snapshots = pg, pg, pg, pg
	} else {
		logger.Warn("POSTGRES_URL not set, using in-memory seed store")
		mem := store.NewSeededMemoryStore(cfg.Game.AdminName)
		users, words, lister, snapshots = mem, mem, mem, mem
	}

	// Create game coordinator and broadcast broker
	broker := ws.NewBroker(logger)
	settings := game.Settings{
		AdminName:    cfg.Game.AdminName,
		MaxOnline:    cfg.Game.MaxOnline,
		DrawCooldown: cfg.Game.DrawCooldown,
		Canvas: game.CanvasLimits{
			MaxActions:       cfg.Game.MaxActions,
			MaxTotalSegments: cfg.Game.MaxTotalSegments,
			MaxActionAge:     cfg.Game.MaxActionAge,
		},
	}
	coord := game.NewCoordinator(settings, users, words, broker, logger)

	// Ranking service and snapshot scheduler
	loc, err := time.LoadLocation(cfg.Game.SnapshotTimezone)
	if err != nil {
		logger.Warn("invalid snapshot timezone, using UTC", "tz", cfg.Game.SnapshotTimezone)
		loc = time.UTC
	}
	rankingSvc := ranking.NewService(lister, snapshots, loc)
	scheduler := ranking.NewScheduler(lister, snapshots, loc, logger)
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	server := httpTransport.NewServer(cfg, coord, broker, rankingSvc, logger)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
