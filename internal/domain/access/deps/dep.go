package deps

import (
	"context"

	"github.com/iyann1255/fsubmul/internal/domain/access/entities"
)

// EntryRepository defines the interface for access entry data access
type EntryRepository interface {
	// Get retrieves the entry for (bot, user)
	Get(ctx context.Context, botKey string, userID int64) (*entities.AccessEntry, error)

	// Upsert creates or replaces the entry for (bot, user)
	Upsert(ctx context.Context, entry *entities.AccessEntry) error

	// Delete removes the entry for (bot, user)
	Delete(ctx context.Context, botKey string, userID int64) error

	// DeleteByBot removes every entry of a bot, owner included
	DeleteByBot(ctx context.Context, botKey string) error

	// ListByBot retrieves all entries of a bot
	ListByBot(ctx context.Context, botKey string) ([]entities.AccessEntry, error)
}
