// Package gate contains the force-subscribe join gate
package gate

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/domain/gate/deps"
	"github.com/iyann1255/fsubmul/internal/domain/gate/repository/postgres"
	"github.com/iyann1255/fsubmul/internal/domain/gate/usecase/buissines"
	settingsuc "github.com/iyann1255/fsubmul/internal/domain/settings/usecase/buissines"
)

// Module provides gate domain dependencies
var Module = fx.Module(
	"gate",
	fx.Provide(
		postgres.NewChannelRepository,
		postgres.NewStateRepository,
		postgres.NewLinkCacheRepository,
		provideShowCountSource,
		buissines.NewUseCase,
	),
)

// provideShowCountSource adapts the settings use case to the gate dependency
func provideShowCountSource(settings *settingsuc.UseCase) deps.ShowCountSource {
	return settings
}
