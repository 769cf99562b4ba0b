package telegram

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/domain/fleet/deps"
	fleetuc "github.com/iyann1255/fsubmul/internal/domain/fleet/usecase/buissines"
)

// Module provides the Telegram delivery layer
var Module = fx.Module(
	"delivery",
	fx.Provide(
		NewFactory,
		provideWorkerFactory,
	),
	fx.Invoke(bindManager),
)

// provideWorkerFactory exposes the factory to the supervisor
func provideWorkerFactory(factory *Factory) deps.WorkerFactory {
	return factory
}

// bindManager closes the factory-supervisor loop before any worker starts
func bindManager(factory *Factory, manager *fleetuc.UseCase) {
	factory.Bind(manager)
}
