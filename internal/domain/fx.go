// Package domain aggregates domain modules
package domain

import (
	"go.uber.org/fx"

	"github.com/iyann1255/fsubmul/internal/domain/access"
	"github.com/iyann1255/fsubmul/internal/domain/fleet"
	"github.com/iyann1255/fsubmul/internal/domain/gate"
	"github.com/iyann1255/fsubmul/internal/domain/settings"
	"github.com/iyann1255/fsubmul/internal/domain/vault"
)

// Module provides all domain dependencies
var Module = fx.Options(
	settings.Module,
	access.Module,
	gate.Module,
	vault.Module,
	fleet.Module,
)
