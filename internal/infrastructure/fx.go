// Package infrastructure aggregates infrastructure modules
package infrastructure

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/infrastructure/database"
	"github.com/iyann1255/fsubmul/internal/infrastructure/kafka"
	"github.com/iyann1255/fsubmul/internal/infrastructure/logger"
)

// Module provides all infrastructure dependencies
var Module = fx.Options(
	logger.Module,
	database.Module,
	kafka.Module,
)
