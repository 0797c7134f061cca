// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jpspell/premier-squares-service/internal/config"
	"github.com/jpspell/premier-squares-service/internal/database"
	"github.com/jpspell/premier-squares-service/internal/handler"
	"github.com/jpspell/premier-squares-service/internal/repository"
	"github.com/jpspell/premier-squares-service/internal/service"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	cfg := config.Load()

	// ── 1. Connect to the document store ─────────────────────────────────
	// Without database configuration the service still serves traffic; data
	// routes answer 503 deterministically via the Unavailable stores.
	var (
		contestStore repository.ContestStore
		winnerStore  repository.WinnerStore
	)
	if database.Configured() {
		pool, err := database.NewPool(ctx)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			slog.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		contestStore = repository.NewContestRepository(pool)
		winnerStore = repository.NewWinnerRepository(pool)
		slog.Info("connected to postgres")
	} else {
		contestStore = repository.UnavailableContestStore{}
		winnerStore = repository.UnavailableWinnerStore{}
		slog.Warn("no database configured; data routes will return 503")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	contestSvc := service.NewContestService(contestStore, cfg)
	winnerSvc := service.NewWinnerService(winnerStore, cfg)
	router := handler.NewRouter(cfg, contestSvc, winnerSvc)

	// ── 3. Start server with graceful shutdown ───────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
