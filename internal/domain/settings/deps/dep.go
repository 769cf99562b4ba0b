package deps

import (
	"context"

	"github.com/iyann1255/fsubmul/internal/domain/settings/entities"
)

// BotConfigRepository defines the interface for per-bot config access
type BotConfigRepository interface {
	// Set stores a config value for a bot
	Set(ctx context.Context, botKey, cfgKey, cfgVal string) error

	// Get retrieves a config value for a bot
	Get(ctx context.Context, botKey, cfgKey string) (string, error)

	// DeleteByBot removes all config rows of a bot
	DeleteByBot(ctx context.Context, botKey string) error
}

// GlobalSettingRepository defines the interface for deployment-wide settings
type GlobalSettingRepository interface {
	// Set stores a global setting
	Set(ctx context.Context, key, value string) error

	// Get retrieves a global setting
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a global setting
	Delete(ctx context.Context, key string) error
}

// PendingActionRepository defines the interface for admin input state
type PendingActionRepository interface {
	// Set stores the pending input mode for (bot, admin)
	Set(ctx context.Context, action *entities.PendingAction) error

	// Get retrieves the pending input mode for (bot, admin)
	Get(ctx context.Context, botKey string, adminID int64) (*entities.PendingAction, error)

	// Clear removes the pending input mode for (bot, admin)
	Clear(ctx context.Context, botKey string, adminID int64) error

	// DeleteByBot removes all pending actions of a bot
	DeleteByBot(ctx context.Context, botKey string) error
}
