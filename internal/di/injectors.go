//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"lrn/internal"
	"lrn/internal/canonical"
	"lrn/internal/fetchers"
	"lrn/internal/pipeline"
	"lrn/internal/providers"
	"lrn/internal/services"
	"lrn/internal/sink"
	"lrn/internal/storage"
	"lrn/internal/structures"
	"lrn/internal/temporal"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		temporal.NewSystemClock,
		temporal.NewResolver,
		canonical.NewCanonicalizer,
		services.NewMergeService,
		services.NewReconcileService,
		sink.NewSink,
		services.NewDispatchService,
		storage.NewZstdCompressor,
		storage.NewFileManager,
		storage.NewLock,
		fetchers.NewSources,
		pipeline.NewRunner,
		internal.NewApp,
	)

	return nil, nil
}
