// Package access contains per-tenant authorization
package access

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/domain/access/repository/postgres"
	"github.com/iyann1255/fsubmul/internal/domain/access/usecase/buissines"
)

// Module provides access domain dependencies
var Module = fx.Module(
	"access",
	fx.Provide(
		postgres.NewEntryRepository,
		buissines.NewUseCase,
	),
)
