// Package vault contains the token-addressed content store
package vault

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/domain/settings/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/domain/vault/deps"
	"github.com/iyann1255/fsubmul/internal/domain/vault/repository/postgres"
	vaultuc "github.com/iyann1255/fsubmul/internal/domain/vault/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/infrastructure/kafka"
)

// Module provides vault domain dependencies
var Module = fx.Module(
	"vault",
	fx.Provide(
		postgres.NewContentRepository,
		postgres.NewUploadRepository,
		postgres.NewPostChannelRepository,
		provideThumbSource,
		provideEventPublisher,
		vaultuc.NewUseCase,
	),
)

// provideThumbSource adapts the settings use case to the vault dependency
func provideThumbSource(settings *buissines.UseCase) deps.ThumbSource {
	return settings
}

// provideEventPublisher adapts the Kafka producer to the vault dependency
func provideEventPublisher(producer *kafka.Producer) deps.EventPublisher {
	return producer
}
