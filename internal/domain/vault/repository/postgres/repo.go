package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyann1255/fsubmul/internal/domain/vault/deps"
	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/vault/errors"
)

// contentRepository implements deps.ContentRepository
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content reference repository
func NewContentRepository(db *gorm.DB) deps.ContentRepository {
	return &contentRepository{db: db}
}

// Save stores a token-to-archive-message mapping
func (r *contentRepository) Save(ctx context.Context, item *entities.ContentItem) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"archive_message_id"}),
		}).
		Create(item)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Get retrieves the archive reference for (bot, token)
func (r *contentRepository) Get(ctx context.Context, botKey, token string) (*entities.ContentItem, error) {
	var item entities.ContentItem
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND token = ?", botKey, token).
		First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrContentNotFound
		}
		return nil, domainerrors.ErrDatabaseOperation
	}
	return &item, nil
}

// uploadRepository implements deps.UploadRepository
type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository creates a new upload session repository
func NewUploadRepository(db *gorm.DB) deps.UploadRepository {
	return &uploadRepository{db: db}
}

// Save stores an upload session
func (r *uploadRepository) Save(ctx context.Context, session *entities.UploadSession) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"uploader_id", "thumb_file_id"}),
		}).
		Create(session)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Get retrieves the session for (bot, token)
func (r *uploadRepository) Get(ctx context.Context, botKey, token string) (*entities.UploadSession, error) {
	var session entities.UploadSession
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND token = ?", botKey, token).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrSessionNotFound
		}
		return nil, domainerrors.ErrDatabaseOperation
	}
	return &session, nil
}

// Delete removes the session for (bot, token)
func (r *uploadRepository) Delete(ctx context.Context, botKey, token string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND token = ?", botKey, token).
		Delete(&entities.UploadSession{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// postChannelRepository implements deps.PostChannelRepository
type postChannelRepository struct {
	db *gorm.DB
}

// NewPostChannelRepository creates a new publish target repository
func NewPostChannelRepository(db *gorm.DB) deps.PostChannelRepository {
	return &postChannelRepository{db: db}
}

// Add stores a publish target; re-adding updates the title
func (r *postChannelRepository) Add(ctx context.Context, target *entities.PostChannel) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title"}),
		}).
		Create(target)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Remove deletes one publish target of a bot
func (r *postChannelRepository) Remove(ctx context.Context, botKey string, channelID int64) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND channel_id = ?", botKey, channelID).
		Delete(&entities.PostChannel{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Clear deletes all publish targets of a bot
func (r *postChannelRepository) Clear(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.PostChannel{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// List retrieves the bot's publish targets in insertion order
func (r *postChannelRepository) List(ctx context.Context, botKey string) ([]entities.PostChannel, error) {
	var targets []entities.PostChannel
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Order("created_at ASC").
		Find(&targets)
	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}
	return targets, nil
}
