// Package fleet contains the bot worker supervisor
package fleet

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/config"
	accessuc "github.com/iyann1255/fsubmul/internal/domain/access/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/deps"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/purge"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/repository/postgres"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/infrastructure/kafka"
)

// Module provides fleet domain dependencies
var Module = fx.Module(
	"fleet",
	fx.Provide(
		postgres.NewBotRepository,
		purge.New,
		provideAccessGranter,
		provideTenantPurger,
		provideEventPublisher,
		buissines.NewUseCase,
	),
	fx.Invoke(registerLifecycle),
)

// provideAccessGranter adapts the access use case to the fleet dependency
func provideAccessGranter(access *accessuc.UseCase) deps.AccessGranter {
	return access
}

// provideTenantPurger adapts the purger to the fleet dependency
func provideTenantPurger(purger *purge.Purger) deps.TenantPurger {
	return purger
}

// provideEventPublisher adapts the Kafka producer to the fleet dependency
func provideEventPublisher(producer *kafka.Producer) deps.EventPublisher {
	return producer
}

// registerLifecycle ties worker startup and shutdown to the application
// lifecycle: the root identity comes up first, then every enabled tenant
func registerLifecycle(
	lc fx.Lifecycle,
	uc *buissines.UseCase,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := uc.StartRoot(ctx, cfg.RootToken); err != nil {
				return err
			}
			uc.LoadEnabled(ctx)
			logger.Info().Msg("Fleet started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			uc.StopAll(ctx)
			logger.Info().Msg("Fleet stopped")
			return nil
		},
	})
}
