package buissines

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	"github.com/iyann1255/fsubmul/internal/domain/settings/deps"
	"github.com/iyann1255/fsubmul/internal/domain/settings/entities"
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

const (
	cfgShowCount   = "fsub_show_n"
	keyCustomThumb = "custom_thumb_file_id"

	minShowCount = 1
	maxShowCount = 20
)

// UseCase implements settings business logic
type UseCase struct {
	botCfg   deps.BotConfigRepository
	global   deps.GlobalSettingRepository
	pending  deps.PendingActionRepository
	fallback int
	logger   zerolog.Logger
}

// NewUseCase creates a new settings use case
func NewUseCase(
	botCfg deps.BotConfigRepository,
	global deps.GlobalSettingRepository,
	pending deps.PendingActionRepository,
	cfg *config.GateConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		botCfg:   botCfg,
		global:   global,
		pending:  pending,
		fallback: cfg.DefaultShowCount,
		logger:   logger,
	}
}

// ShowCount returns the bot's join-button window size, clamped to [1, 20].
// Missing or malformed config falls back to the deployment default.
func (u *UseCase) ShowCount(ctx context.Context, botKey string) int {
	v, err := u.botCfg.Get(ctx, botKey, cfgShowCount)
	if err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			return clamp(n)
		}
	} else if !pkgerrors.IsNotFoundError(err) {
		u.logger.Error().Err(err).
			Str("bot_key", botKey).
			Msg("Failed to read show count config")
	}
	return clamp(u.fallback)
}

// SetShowCount stores the bot's join-button window size
func (u *UseCase) SetShowCount(ctx context.Context, botKey string, n int) error {
	if n < minShowCount || n > maxShowCount {
		return pkgerrors.NewValidationError("show count must be between 1 and 20")
	}
	return u.botCfg.Set(ctx, botKey, cfgShowCount, strconv.Itoa(n))
}

// CustomThumb returns the global custom thumbnail file ID, empty when unset
func (u *UseCase) CustomThumb(ctx context.Context) string {
	v, err := u.global.Get(ctx, keyCustomThumb)
	if err != nil {
		if !pkgerrors.IsNotFoundError(err) {
			u.logger.Error().Err(err).Msg("Failed to read custom thumbnail")
		}
		return ""
	}
	return v
}

// SetCustomThumb stores the global custom thumbnail file ID
func (u *UseCase) SetCustomThumb(ctx context.Context, fileID string) error {
	if fileID == "" {
		return pkgerrors.NewValidationError("thumbnail file ID is required")
	}
	return u.global.Set(ctx, keyCustomThumb, fileID)
}

// DeleteCustomThumb removes the global custom thumbnail
func (u *UseCase) DeleteCustomThumb(ctx context.Context) error {
	return u.global.Delete(ctx, keyCustomThumb)
}

// SetPending stores the admin's pending input mode for a bot
func (u *UseCase) SetPending(ctx context.Context, botKey string, adminID int64, action, payload string) error {
	return u.pending.Set(ctx, &entities.PendingAction{
		BotKey:  botKey,
		AdminID: adminID,
		Action:  action,
		Payload: payload,
	})
}

// Pending retrieves the admin's pending input mode for a bot
func (u *UseCase) Pending(ctx context.Context, botKey string, adminID int64) (*entities.PendingAction, error) {
	return u.pending.Get(ctx, botKey, adminID)
}

// ClearPending removes the admin's pending input mode for a bot
func (u *UseCase) ClearPending(ctx context.Context, botKey string, adminID int64) error {
	return u.pending.Clear(ctx, botKey, adminID)
}

func clamp(n int) int {
	if n < minShowCount {
		return minShowCount
	}
	if n > maxShowCount {
		return maxShowCount
	}
	return n
}
