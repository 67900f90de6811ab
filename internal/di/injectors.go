//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"homefeed/internal"
	"homefeed/internal/controllers"
	"homefeed/internal/persistence"
	"homefeed/internal/providers"
	"homefeed/internal/services"
	"homefeed/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCatalogStore,
		providers.NewWatchStore,

		services.NewFeedService,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		persistence.NewZstdCompressor,
		persistence.NewFileManager,
		persistence.NewScheduler,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
