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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yukikurage/priority-focus-api/internal/config"
	"github.com/yukikurage/priority-focus-api/internal/database"
	"github.com/yukikurage/priority-focus-api/internal/logging"
	"github.com/yukikurage/priority-focus-api/internal/server"
)

func main() {
	// A missing .env is fine; the environment may already be populated
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	if cfg.IsProduction() && cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn("JWT_SECRET is not set; using the development default")
	}

	// Connect to database
	if err := database.Connect(cfg, log); err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close() }()

	// Run migrations
	if err := database.Migrate(log); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, database.GetDB(), log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "address", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
