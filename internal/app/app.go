// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/config"
	"github.com/iyann1255/fsubmul/internal/delivery/telegram"
	"github.com/iyann1255/fsubmul/internal/domain"
	"github.com/iyann1255/fsubmul/internal/infrastructure"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, database, kafka)
		infrastructure.Module,

		// Delivery (worker factory, handlers)
		telegram.Module,

		// Domain (vault, gate, access, settings, fleet)
		domain.Module,
	)
}
