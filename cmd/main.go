package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evpopov/bucket_tracker/config"
	"github.com/evpopov/bucket_tracker/data"
	"github.com/evpopov/bucket_tracker/data/cache"
	"github.com/evpopov/bucket_tracker/data/repository/postgres"
	"github.com/evpopov/bucket_tracker/internal/reportGenerator/xlsxGenerator"
	"github.com/evpopov/bucket_tracker/internal/scheduler"
	"github.com/evpopov/bucket_tracker/internal/service/portfolioService"
	"github.com/evpopov/bucket_tracker/utils"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	pgClient := data.NewPostgresClient(cfg)
	defer pgClient.Close()

	pgRepo := postgres.NewPostgres(pgClient)

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)

	reportGenerator := xlsxGenerator.New()

	portfolioSrv := portfolioService.New(cfg, pgRepo, redisCache, reportGenerator)

	sched := scheduler.New()

	sched.NewIntervalJob("portfolio snapshot", func(ctx context.Context) error {
		return portfolioSrv.CreateSnapshot(utils.CreateCtxWithRqID(ctx), nil)
	}, cfg.Jobs.SnapshotInterval, true)

	sched.NewIntervalJob("snapshot purge", func(ctx context.Context) error {
		return portfolioSrv.PurgeSnapshotsBefore(utils.CreateCtxWithRqID(ctx), time.Now().Add(-cfg.Jobs.SnapshotRetention))
	}, cfg.Jobs.PurgeInterval, false)

	sched.NewCrontabJob("allocation report", func(ctx context.Context) error {
		_, err := portfolioSrv.GenerateAllocationReport(utils.CreateCtxWithRqID(ctx))
		return err
	}, cfg.Jobs.ReportCrontab, false)

	sched.Start()
	defer sched.Stop()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
