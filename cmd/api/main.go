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

	"github.com/meridian-legal/insights-backend/internal/api"
	"github.com/meridian-legal/insights-backend/internal/api/handlers"
	"github.com/meridian-legal/insights-backend/internal/auth"
	"github.com/meridian-legal/insights-backend/internal/config"
	"github.com/meridian-legal/insights-backend/internal/db"
	"github.com/meridian-legal/insights-backend/internal/logger"
	"github.com/meridian-legal/insights-backend/internal/metrics"
	"github.com/meridian-legal/insights-backend/internal/middleware"
	"github.com/meridian-legal/insights-backend/internal/repository/postgres"
	"github.com/meridian-legal/insights-backend/internal/services"
	"github.com/meridian-legal/insights-backend/internal/upload"
	"github.com/meridian-legal/insights-backend/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	store, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Error("upload dir", "err", err)
		os.Exit(1)
	}

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	insightSvc := services.NewInsightService(repos.Insights, store, wp)
	adminSvc := services.NewAdminService(repos.Admins, tm)

	metrics.Init()
	r := api.NewRouter(api.Deps{
		Cfg:        cfg,
		Guard:      middleware.NewAuthGuard(tm, repos.Admins),
		Insights:   handlers.NewInsightHandler(insightSvc),
		Auth:       handlers.NewAuthHandler(adminSvc),
		Uploads:    handlers.NewUploadHandler(store),
		UploadsDir: store.Dir(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
