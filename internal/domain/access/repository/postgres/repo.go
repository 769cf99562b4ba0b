package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyann1255/fsubmul/internal/domain/access/deps"
	"github.com/iyann1255/fsubmul/internal/domain/access/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/access/errors"
)

// entryRepository implements deps.EntryRepository
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new access entry repository
func NewEntryRepository(db *gorm.DB) deps.EntryRepository {
	return &entryRepository{db: db}
}

// Get retrieves the entry for (bot, user)
func (r *entryRepository) Get(ctx context.Context, botKey string, userID int64) (*entities.AccessEntry, error) {
	var entry entities.AccessEntry
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND user_id = ?", botKey, userID).
		First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrEntryNotFound
		}
		return nil, domainerrors.ErrDatabaseOperation
	}
	return &entry, nil
}

// Upsert creates or replaces the entry for (bot, user)
func (r *entryRepository) Upsert(ctx context.Context, entry *entities.AccessEntry) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role"}),
		}).
		Create(entry)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Delete removes the entry for (bot, user)
func (r *entryRepository) Delete(ctx context.Context, botKey string, userID int64) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND user_id = ?", botKey, userID).
		Delete(&entities.AccessEntry{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// DeleteByBot removes every entry of a bot, owner included
func (r *entryRepository) DeleteByBot(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.AccessEntry{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// ListByBot retrieves all entries of a bot
func (r *entryRepository) ListByBot(ctx context.Context, botKey string) ([]entities.AccessEntry, error) {
	var entries []entities.AccessEntry
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Order("created_at ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}
	return entries, nil
}
