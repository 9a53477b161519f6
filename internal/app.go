package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lrn/internal/pipeline"
	"lrn/internal/providers"
	"lrn/internal/storage"
	"lrn/internal/structures"
)

type App struct {
	runner      pipeline.RunnerInterface
	fileManager *storage.FileManager
	conf        *structures.Config
	logger      providers.Logger
}

func NewApp(runner pipeline.RunnerInterface, fileManager *storage.FileManager, conf *structures.Config, logger providers.Logger) *App {
	return &App{
		runner:      runner,
		fileManager: fileManager,
		conf:        conf,
		logger:      logger,
	}
}

// Run performs a single pass. SIGINT and SIGTERM cancel it; the pass then stops
// dispatching and still persists what it has.
func (a *App) Run(ctx context.Context) (*pipeline.RunReport, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Infof(providers.TypeApp, "Starting %s with config %s", a.conf.AppName, a.conf.Path)
	report, err := a.runner.Run(ctx)
	if err != nil {
		a.logger.Errorf(providers.TypeApp, "Run aborted: %s", err)
		return report, fmt.Errorf("run: %w", err)
	}
	if ctx.Err() != nil {
		a.logger.Warnf(providers.TypeApp, "Shutdown signal received during run %s", report.RunID)
	}
	a.logger.Infof(providers.TypeApp, "%s finished", a.conf.AppName)
	return report, nil
}

func (a *App) Close() {
	a.fileManager.Close()
	a.logger.Close()
}
