// Package settings contains per-bot and global configuration state
package settings

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/domain/settings/repository/postgres"
	"github.com/iyann1255/fsubmul/internal/domain/settings/usecase/buissines"
)

// Module provides settings domain dependencies
var Module = fx.Module(
	"settings",
	fx.Provide(
		postgres.NewBotConfigRepository,
		postgres.NewGlobalSettingRepository,
		postgres.NewPendingActionRepository,
		buissines.NewUseCase,
	),
)
