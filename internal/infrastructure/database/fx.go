// Package database contains database infrastructure
package database

import (
	"go.uber.org/fx"
)

// Module provides database connection for fx dependency injection
var Module = fx.Module("database",
	fx.Provide(NewPostgresDB),
)
