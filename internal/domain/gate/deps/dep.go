package deps

import (
	"context"
)

// ChannelRepository defines the interface for required-channel data access
type ChannelRepository interface {
	// Add stores a required channel for a bot; duplicates are ignored
	Add(ctx context.Context, botKey, channel string) error

	// Remove deletes one required channel of a bot
	Remove(ctx context.Context, botKey, channel string) error

	// Clear deletes all required channels of a bot
	Clear(ctx context.Context, botKey string) error

	// List retrieves the bot's required channels in insertion order
	List(ctx context.Context, botKey string) ([]string, error)
}

// StateRepository defines the interface for rotation offset data access
type StateRepository interface {
	// Offset retrieves the stored rotation offset, zero when absent
	Offset(ctx context.Context, botKey, token string, userID int64) (int, error)

	// SetOffset persists the rotation offset
	SetOffset(ctx context.Context, botKey, token string, userID int64, offset int) error

	// DeleteByBot removes all rotation state of a bot
	DeleteByBot(ctx context.Context, botKey string) error
}

// LinkCacheRepository defines the interface for invite link cache access
type LinkCacheRepository interface {
	// Get retrieves a cached invite link
	Get(ctx context.Context, botKey, channelKey string) (string, error)

	// Put stores an invite link
	Put(ctx context.Context, botKey, channelKey, inviteLink string) error

	// DeleteByBot removes all cached links of a bot
	DeleteByBot(ctx context.Context, botKey string) error
}

// Membership queries a user's standing in a channel through the platform
type Membership interface {
	// IsMember reports whether the user holds an active membership
	IsMember(ctx context.Context, channel string, userID int64) (bool, error)
}

// InviteLinker creates invite links through the platform
type InviteLinker interface {
	// CreateInviteLink requests a fresh invite link for the channel
	CreateInviteLink(ctx context.Context, channel string) (string, error)
}

// ShowCountSource resolves the per-bot join-button window size
type ShowCountSource interface {
	// ShowCount returns the window size for a bot, already clamped
	ShowCount(ctx context.Context, botKey string) int
}
