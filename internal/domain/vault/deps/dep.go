package deps

import (
	"context"

	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
)

// ContentRepository defines the interface for archived content references
type ContentRepository interface {
	// Save stores a token-to-archive-message mapping
	Save(ctx context.Context, item *entities.ContentItem) error

	// Get retrieves the archive reference for (bot, token)
	Get(ctx context.Context, botKey, token string) (*entities.ContentItem, error)
}

// UploadRepository defines the interface for transient upload sessions
type UploadRepository interface {
	// Save stores an upload session
	Save(ctx context.Context, session *entities.UploadSession) error

	// Get retrieves the session for (bot, token)
	Get(ctx context.Context, botKey, token string) (*entities.UploadSession, error)

	// Delete removes the session for (bot, token)
	Delete(ctx context.Context, botKey, token string) error
}

// PostChannelRepository defines the interface for publish target access
type PostChannelRepository interface {
	// Add stores a publish target; re-adding updates the title
	Add(ctx context.Context, target *entities.PostChannel) error

	// Remove deletes one publish target of a bot
	Remove(ctx context.Context, botKey string, channelID int64) error

	// Clear deletes all publish targets of a bot
	Clear(ctx context.Context, botKey string) error

	// List retrieves the bot's publish targets in insertion order
	List(ctx context.Context, botKey string) ([]entities.PostChannel, error)
}

// Sender delivers a publish post to one chat through the platform
type Sender interface {
	// SendTextLink sends an HTML caption with a single URL button
	SendTextLink(ctx context.Context, to int64, text, buttonText, buttonURL string) error

	// SendPhotoLink sends a photo with an HTML caption and one URL button
	SendPhotoLink(ctx context.Context, to int64, photoFileID, caption, buttonText, buttonURL string) error
}

// ThumbSource resolves the deployment-wide custom thumbnail
type ThumbSource interface {
	// CustomThumb returns the custom thumbnail file ID, empty when unset
	CustomThumb(ctx context.Context) string
}

// EventPublisher emits publish audit events
type EventPublisher interface {
	// SendPublishResult sends the outcome of a publish attempt
	SendPublishResult(ctx context.Context, botKey, token string, succeeded int, failures []string) error
}
