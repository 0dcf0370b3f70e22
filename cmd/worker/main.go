package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/mcphub/directory-backend/config"
	"github.com/mcphub/directory-backend/internal/backup"
	"github.com/mcphub/directory-backend/internal/bootstrap"
	"github.com/mcphub/directory-backend/internal/logging"
	pgrepo "github.com/mcphub/directory-backend/internal/servers/repository/postgres"
	"github.com/mcphub/directory-backend/internal/servers/service"
	storage "github.com/mcphub/directory-backend/internal/storage/postgres"
)

func main() {
	once := flag.Bool("once", false, "write a single snapshot and exit")
	dir := flag.String("dir", "", "override BACKUP_DIR")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if *dir != "" {
		cfg.Backup.Dir = *dir
	}

	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{
		DSN:      storage.DSN(&cfg.Database),
		MaxConns: 2,
		MinConns: 1,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()

	svc := service.New(pgrepo.NewProjectRepository(pool), pgrepo.NewConfigRepository(pool), nil, cfg, logger)
	scheduler := backup.NewScheduler(svc, cfg.Backup, logger)

	if *once {
		path, err := scheduler.RunOnce(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("backup failed")
			pool.Close()
			os.Exit(1)
		}
		logger.Info().Str("path", path).Msg("backup complete")
		return
	}

	if cfg.Backup.Schedule == "" {
		logger.Fatal().Msg("BACKUP_SCHEDULE is required unless -once is given")
	}
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start backup scheduler")
	}

	<-ctx.Done()
	logger.Info().Msg("stopping backup scheduler")
	scheduler.Stop()
}
