//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"mfd/internal"
	"mfd/internal/controllers"
	"mfd/internal/loader"
	"mfd/internal/models"
	"mfd/internal/providers"
	"mfd/internal/services"
	"mfd/internal/snapshot"
	"mfd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		models.NewPostingRecordStore,
		services.NewAnalysisService,
		provideStatsSource,
		providers.NewMetricsProvider,
		providers.NewCacheProvider,
		loader.NewLoader,

		snapshot.NewZstdCompressor,
		snapshot.NewSnapshotManager,
		snapshot.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
