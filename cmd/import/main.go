package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/light-bringer/carcat-service/internal/app/catalog/usecases/import_catalog"
	"github.com/light-bringer/carcat-service/internal/config"
	logpkg "github.com/light-bringer/carcat-service/internal/logger"
	"github.com/light-bringer/carcat-service/internal/services"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	dir := flag.String("dir", cfg.Import.CSVDir, "Directory containing the catalog CSV files")
	schedule := flag.String("schedule", cfg.Import.Schedule, "Cron spec for repeated imports; empty runs once")
	flag.Parse()

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, *dir, *schedule, logger); err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}
}

func run(cfg config.Config, dir, schedule string, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	importer := serviceOpts.Importer
	logger.Info("Catalog import configured",
		zap.String("dir", dir),
		zap.String("schedule", schedule),
		zap.Strings("steps", importer.Steps()),
	)

	if schedule == "" {
		return importOnce(ctx, importer, dir, logger)
	}

	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Named("cron")))
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := c.AddFunc(schedule, func() {
		if err := importOnce(ctx, importer, dir, logger); err != nil {
			logger.Error("Scheduled import failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	<-ctx.Done()
	logger.Info("Received shutdown signal, waiting for running import")
	<-c.Stop().Done()
	return nil
}

func importOnce(ctx context.Context, importer *import_catalog.Interactor, dir string, logger *zap.Logger) error {
	ctx = logpkg.ContextWithLogger(ctx, logger.With(zap.String("dir", dir)))

	resp, err := importer.Execute(ctx, &import_catalog.Request{FS: os.DirFS(dir)})
	if resp != nil {
		for _, r := range resp.Reports {
			logger.Info("Import step finished",
				zap.String("step", r.Step),
				zap.Int("created", r.Created),
				zap.Int("updated", r.Updated),
				zap.Int("unchanged", r.Unchanged),
				zap.Int("skipped", r.Skipped),
			)
		}
	}
	if err != nil {
		return err
	}
	logger.Info("Catalog import completed")
	return nil
}
