package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyann1255/fsubmul/internal/domain/fleet/deps"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/fleet/errors"
)

// botRepository implements deps.BotRepository
type botRepository struct {
	db *gorm.DB
}

// NewBotRepository creates a new bot identity repository
func NewBotRepository(db *gorm.DB) deps.BotRepository {
	return &botRepository{db: db}
}

// Get retrieves one identity by key
func (r *botRepository) Get(ctx context.Context, botKey string) (*entities.BotIdentity, error) {
	var identity entities.BotIdentity
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		First(&identity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrBotNotFound
		}
		return nil, domainerrors.ErrDatabaseOperation
	}
	return &identity, nil
}

// Upsert creates or refreshes an identity
func (r *botRepository) Upsert(ctx context.Context, identity *entities.BotIdentity) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "username", "enabled", "owner_id", "updated_at"}),
		}).
		Create(identity)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// SetEnabled flips the enabled flag
func (r *botRepository) SetEnabled(ctx context.Context, botKey string, enabled bool) error {
	result := r.db.WithContext(ctx).
		Model(&entities.BotIdentity{}).
		Where("bot_key = ?", botKey).
		Update("enabled", enabled)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Delete removes the identity row
func (r *botRepository) Delete(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.BotIdentity{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// List retrieves all identities in registration order
func (r *botRepository) List(ctx context.Context) ([]entities.BotIdentity, error) {
	var identities []entities.BotIdentity
	result := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&identities)
	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}
	return identities, nil
}

// ListEnabled retrieves all enabled identities in registration order
func (r *botRepository) ListEnabled(ctx context.Context) ([]entities.BotIdentity, error) {
	var identities []entities.BotIdentity
	result := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("created_at ASC").
		Find(&identities)
	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}
	return identities, nil
}
