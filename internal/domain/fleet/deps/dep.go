package deps

import (
	"context"

	"github.com/iyann1255/fsubmul/internal/domain/fleet/entities"
)

// BotRepository defines the interface for bot identity data access
type BotRepository interface {
	// Get retrieves one identity by key
	Get(ctx context.Context, botKey string) (*entities.BotIdentity, error)

	// Upsert creates or refreshes an identity
	Upsert(ctx context.Context, identity *entities.BotIdentity) error

	// SetEnabled flips the enabled flag
	SetEnabled(ctx context.Context, botKey string, enabled bool) error

	// Delete removes the identity row
	Delete(ctx context.Context, botKey string) error

	// List retrieves all identities in registration order
	List(ctx context.Context) ([]entities.BotIdentity, error)

	// ListEnabled retrieves all enabled identities in registration order
	ListEnabled(ctx context.Context) ([]entities.BotIdentity, error)
}

// Runtime is one worker's event loop and platform session
type Runtime interface {
	// Run polls the platform for updates until the context is cancelled
	Run(ctx context.Context)

	// Close releases the platform session
	Close(ctx context.Context) error
}

// WorkerFactory verifies credentials and builds worker runtimes
type WorkerFactory interface {
	// Verify checks the credential against the platform and returns the
	// bot's username, from which the bot key is derived
	Verify(ctx context.Context, token string) (string, error)

	// Build constructs a runtime with the full handler set bound to the key
	Build(token, username string, isRoot bool) (Runtime, error)
}

// AccessGranter creates the owner grant for a freshly registered bot
type AccessGranter interface {
	GrantOwner(ctx context.Context, botKey string, userID int64) error
}

// TenantPurger removes a tenant's dependent state on identity removal
type TenantPurger interface {
	PurgeTenant(ctx context.Context, botKey string) error
}

// EventPublisher emits bot lifecycle audit events
type EventPublisher interface {
	SendBotLifecycle(ctx context.Context, event, botKey string) error
}
