package buissines

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	"github.com/iyann1255/fsubmul/internal/domain/access/deps"
	"github.com/iyann1255/fsubmul/internal/domain/access/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/access/errors"
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

// UseCase implements per-tenant authorization logic
type UseCase struct {
	entries     deps.EntryRepository
	superadmins map[int64]struct{}
	logger      zerolog.Logger
}

// NewUseCase creates a new access use case
func NewUseCase(
	entries deps.EntryRepository,
	cfg *config.AccessConfig,
	logger zerolog.Logger,
) *UseCase {
	superadmins := make(map[int64]struct{}, len(cfg.SuperadminIDs))
	for _, id := range cfg.SuperadminIDs {
		superadmins[id] = struct{}{}
	}

	return &UseCase{
		entries:     entries,
		superadmins: superadmins,
		logger:      logger,
	}
}

// IsSuperadmin reports whether the user belongs to the deployment-wide
// superadmin set
func (u *UseCase) IsSuperadmin(userID int64) bool {
	_, ok := u.superadmins[userID]
	return ok
}

// CanManage resolves management authority over a bot. The root identity is
// managed by superadmins only; tenant bots accept superadmins plus holders of
// an owner or admin entry.
func (u *UseCase) CanManage(ctx context.Context, botKey string, userID int64, isRoot bool) bool {
	if isRoot {
		return u.IsSuperadmin(userID)
	}

	if u.IsSuperadmin(userID) {
		return true
	}

	entry, err := u.entries.Get(ctx, botKey, userID)
	if err != nil {
		if !pkgerrors.IsNotFoundError(err) {
			u.logger.Error().Err(err).
				Str("bot_key", botKey).
				Int64("user_id", userID).
				Msg("Failed to read access entry")
		}
		return false
	}

	return entry.Role == entities.RoleOwner || entry.Role == entities.RoleAdmin
}

// GrantOwner creates the owner entry for a freshly registered bot
func (u *UseCase) GrantOwner(ctx context.Context, botKey string, userID int64) error {
	return u.entries.Upsert(ctx, &entities.AccessEntry{
		BotKey: botKey,
		UserID: userID,
		Role:   entities.RoleOwner,
	})
}

// AddEntries grants the role to each user, idempotently. An existing owner is
// never downgraded.
func (u *UseCase) AddEntries(ctx context.Context, botKey string, userIDs []int64, role entities.Role) error {
	if role != entities.RoleOwner && role != entities.RoleAdmin {
		return pkgerrors.NewValidationError("unknown role")
	}

	for _, userID := range userIDs {
		existing, err := u.entries.Get(ctx, botKey, userID)
		if err != nil && !pkgerrors.IsNotFoundError(err) {
			return err
		}
		if existing != nil && existing.Role == entities.RoleOwner {
			continue
		}

		if err := u.entries.Upsert(ctx, &entities.AccessEntry{
			BotKey: botKey,
			UserID: userID,
			Role:   role,
		}); err != nil {
			return err
		}
	}

	return nil
}

// RemoveEntry removes one user's entry. Owner entries are protected; removing
// an owner requires whole-identity removal.
func (u *UseCase) RemoveEntry(ctx context.Context, botKey string, userID int64) error {
	entry, err := u.entries.Get(ctx, botKey, userID)
	if err != nil {
		return err
	}

	if entry.Role == entities.RoleOwner {
		return domainerrors.ErrProtectedOwner
	}

	return u.entries.Delete(ctx, botKey, userID)
}

// ClearAll removes every entry of a bot, owner included. The asymmetry with
// RemoveEntry is intentional: access resets and identity removal both rely on
// a full wipe.
func (u *UseCase) ClearAll(ctx context.Context, botKey string) error {
	return u.entries.DeleteByBot(ctx, botKey)
}

// List retrieves all entries of a bot
func (u *UseCase) List(ctx context.Context, botKey string) ([]entities.AccessEntry, error) {
	return u.entries.ListByBot(ctx, botKey)
}
