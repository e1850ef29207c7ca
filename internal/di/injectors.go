//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"intentd/internal"
	"intentd/internal/controllers"
	"intentd/internal/intent"
	"intentd/internal/providers"
	"intentd/internal/scheduler"
	"intentd/internal/services"
	"intentd/internal/storage"
	"intentd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,

		storage.NewKVStore,
		wire.Bind(new(intent.Store), new(storage.KVStore)),
		wire.Bind(new(scheduler.Closer), new(storage.KVStore)),

		services.NewSessionService,
		wire.Bind(new(services.SessionServiceInterface), new(*services.SessionService)),
		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
