package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcphub/directory-backend/config"
	"github.com/mcphub/directory-backend/internal/backup"
	"github.com/mcphub/directory-backend/internal/bootstrap"
	"github.com/mcphub/directory-backend/internal/comments"
	"github.com/mcphub/directory-backend/internal/logging"
	"github.com/mcphub/directory-backend/internal/servers/guard"
	pgrepo "github.com/mcphub/directory-backend/internal/servers/repository/postgres"
	"github.com/mcphub/directory-backend/internal/servers/service"
	storage "github.com/mcphub/directory-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.RequireDeletePassword(); err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn := storage.DSN(&cfg.Database)
	if cfg.Database.AutoMigrate {
		if err := storage.Migrate(ctx, dsn); err != nil {
			logger.Fatal().Err(err).Msg("migrate database")
		}
		logger.Info().Msg("database migrations applied")
	}

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      dsn,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory attempt limiter")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var limiter guard.AttemptLimiter
	if rdb != nil {
		limiter = guard.NewRedisLimiter(rdb, cfg.Admin.DeleteAttemptLimit, cfg.Admin.DeleteAttemptWindow)
	} else {
		limiter = guard.NewMemoryLimiter(cfg.Admin.DeleteAttemptLimit, cfg.Admin.DeleteAttemptWindow)
	}

	svc := service.New(
		pgrepo.NewProjectRepository(pool),
		pgrepo.NewConfigRepository(pool),
		limiter,
		cfg,
		logger,
	)

	scheduler := backup.NewScheduler(svc, cfg.Backup, logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start backup scheduler")
	}
	defer scheduler.Stop()

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:   cfg,
		Logger:   logger,
		DB:       pool,
		Redis:    rdb,
		Servers:  svc,
		Comments: comments.NewRepo(pool),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.App.Environment).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}
