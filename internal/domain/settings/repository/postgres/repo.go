package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyann1255/fsubmul/internal/domain/settings/deps"
	"github.com/iyann1255/fsubmul/internal/domain/settings/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/settings/errors"
)

// botConfigRepository implements deps.BotConfigRepository
type botConfigRepository struct {
	db *gorm.DB
}

// NewBotConfigRepository creates a new per-bot config repository
func NewBotConfigRepository(db *gorm.DB) deps.BotConfigRepository {
	return &botConfigRepository{db: db}
}

// Set stores a config value for a bot
func (r *botConfigRepository) Set(ctx context.Context, botKey, cfgKey, cfgVal string) error {
	row := &entities.BotConfig{BotKey: botKey, CfgKey: cfgKey, CfgVal: cfgVal}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "cfg_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"cfg_val"}),
		}).
		Create(row)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Get retrieves a config value for a bot
func (r *botConfigRepository) Get(ctx context.Context, botKey, cfgKey string) (string, error) {
	var row entities.BotConfig
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND cfg_key = ?", botKey, cfgKey).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrSettingNotFound
		}
		return "", domainerrors.ErrDatabaseOperation
	}
	return row.CfgVal, nil
}

// DeleteByBot removes all config rows of a bot
func (r *botConfigRepository) DeleteByBot(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.BotConfig{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// globalSettingRepository implements deps.GlobalSettingRepository
type globalSettingRepository struct {
	db *gorm.DB
}

// NewGlobalSettingRepository creates a new global setting repository
func NewGlobalSettingRepository(db *gorm.DB) deps.GlobalSettingRepository {
	return &globalSettingRepository{db: db}
}

// Set stores a global setting
func (r *globalSettingRepository) Set(ctx context.Context, key, value string) error {
	row := &entities.GlobalSetting{Key: key, Value: value}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(row)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Get retrieves a global setting
func (r *globalSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var row entities.GlobalSetting
	result := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrSettingNotFound
		}
		return "", domainerrors.ErrDatabaseOperation
	}
	return row.Value, nil
}

// Delete removes a global setting
func (r *globalSettingRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&entities.GlobalSetting{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// pendingActionRepository implements deps.PendingActionRepository
type pendingActionRepository struct {
	db *gorm.DB
}

// NewPendingActionRepository creates a new pending action repository
func NewPendingActionRepository(db *gorm.DB) deps.PendingActionRepository {
	return &pendingActionRepository{db: db}
}

// Set stores the pending input mode for (bot, admin)
func (r *pendingActionRepository) Set(ctx context.Context, action *entities.PendingAction) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "admin_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"action", "payload", "updated_at"}),
		}).
		Create(action)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Get retrieves the pending input mode for (bot, admin)
func (r *pendingActionRepository) Get(ctx context.Context, botKey string, adminID int64) (*entities.PendingAction, error) {
	var row entities.PendingAction
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND admin_id = ?", botKey, adminID).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNoPendingAction
		}
		return nil, domainerrors.ErrDatabaseOperation
	}
	return &row, nil
}

// Clear removes the pending input mode for (bot, admin)
func (r *pendingActionRepository) Clear(ctx context.Context, botKey string, adminID int64) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND admin_id = ?", botKey, adminID).
		Delete(&entities.PendingAction{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// DeleteByBot removes all pending actions of a bot
func (r *pendingActionRepository) DeleteByBot(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.PendingAction{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}
