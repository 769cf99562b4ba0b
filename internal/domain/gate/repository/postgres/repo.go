package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iyann1255/fsubmul/internal/domain/gate/deps"
	"github.com/iyann1255/fsubmul/internal/domain/gate/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/gate/errors"
)

// channelRepository implements deps.ChannelRepository
type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new required-channel repository
func NewChannelRepository(db *gorm.DB) deps.ChannelRepository {
	return &channelRepository{db: db}
}

// Add stores a required channel for a bot; duplicates are ignored
func (r *channelRepository) Add(ctx context.Context, botKey, channel string) error {
	row := &entities.RequiredChannel{BotKey: botKey, Channel: channel}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Remove deletes one required channel of a bot
func (r *channelRepository) Remove(ctx context.Context, botKey, channel string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND channel = ?", botKey, channel).
		Delete(&entities.RequiredChannel{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// Clear deletes all required channels of a bot
func (r *channelRepository) Clear(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.RequiredChannel{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// List retrieves the bot's required channels in insertion order
func (r *channelRepository) List(ctx context.Context, botKey string) ([]string, error) {
	var rows []entities.RequiredChannel
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Order("created_at ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, domainerrors.ErrDatabaseOperation
	}

	channels := make([]string, 0, len(rows))
	for _, row := range rows {
		channels = append(channels, row.Channel)
	}
	return channels, nil
}

// stateRepository implements deps.StateRepository
type stateRepository struct {
	db *gorm.DB
}

// NewStateRepository creates a new rotation state repository
func NewStateRepository(db *gorm.DB) deps.StateRepository {
	return &stateRepository{db: db}
}

// Offset retrieves the stored rotation offset, zero when absent
func (r *stateRepository) Offset(ctx context.Context, botKey, token string, userID int64) (int, error) {
	var row entities.GateState
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND token = ? AND user_id = ?", botKey, token, userID).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, domainerrors.ErrDatabaseOperation
	}
	return row.Offset, nil
}

// SetOffset persists the rotation offset
func (r *stateRepository) SetOffset(ctx context.Context, botKey, token string, userID int64, offset int) error {
	row := &entities.GateState{
		BotKey: botKey,
		Token:  token,
		UserID: userID,
		Offset: offset,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "token"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rotation_offset", "updated_at"}),
		}).
		Create(row)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// DeleteByBot removes all rotation state of a bot
func (r *stateRepository) DeleteByBot(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.GateState{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// linkCacheRepository implements deps.LinkCacheRepository
type linkCacheRepository struct {
	db *gorm.DB
}

// NewLinkCacheRepository creates a new invite link cache repository
func NewLinkCacheRepository(db *gorm.DB) deps.LinkCacheRepository {
	return &linkCacheRepository{db: db}
}

// Get retrieves a cached invite link
func (r *linkCacheRepository) Get(ctx context.Context, botKey, channelKey string) (string, error) {
	var row entities.JoinLink
	result := r.db.WithContext(ctx).
		Where("bot_key = ? AND channel_key = ?", botKey, channelKey).
		First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", domainerrors.ErrDatabaseOperation
	}
	return row.InviteLink, nil
}

// Put stores an invite link
func (r *linkCacheRepository) Put(ctx context.Context, botKey, channelKey, inviteLink string) error {
	row := &entities.JoinLink{
		BotKey:     botKey,
		ChannelKey: channelKey,
		InviteLink: inviteLink,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "bot_key"}, {Name: "channel_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"invite_link", "updated_at"}),
		}).
		Create(row)
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}

// DeleteByBot removes all cached links of a bot
func (r *linkCacheRepository) DeleteByBot(ctx context.Context, botKey string) error {
	result := r.db.WithContext(ctx).
		Where("bot_key = ?", botKey).
		Delete(&entities.JoinLink{})
	if result.Error != nil {
		return domainerrors.ErrDatabaseOperation
	}
	return nil
}
