// Package purge removes a tenant's dependent state on identity removal
package purge

import (
	"context"

	"github.com/rs/zerolog"

	accessdeps "github.com/iyann1255/fsubmul/internal/domain/access/deps"
	gatedeps "github.com/iyann1255/fsubmul/internal/domain/gate/deps"
	settingsdeps "github.com/iyann1255/fsubmul/internal/domain/settings/deps"
	vaultdeps "github.com/iyann1255/fsubmul/internal/domain/vault/deps"
)

// Purger cascades identity removal across the tenant's access entries,
// config, channel lists, rotation state, link cache and pending actions.
// Archived content references are deliberately kept: tokens already published
// stay resolvable if the identity is ever re-registered.
type Purger struct {
	access   accessdeps.EntryRepository
	channels gatedeps.ChannelRepository
	state    gatedeps.StateRepository
	links    gatedeps.LinkCacheRepository
	botCfg   settingsdeps.BotConfigRepository
	pending  settingsdeps.PendingActionRepository
	posts    vaultdeps.PostChannelRepository
	logger   zerolog.Logger
}

// New creates a tenant purger over the per-feature repositories
func New(
	access accessdeps.EntryRepository,
	channels gatedeps.ChannelRepository,
	state gatedeps.StateRepository,
	links gatedeps.LinkCacheRepository,
	botCfg settingsdeps.BotConfigRepository,
	pending settingsdeps.PendingActionRepository,
	posts vaultdeps.PostChannelRepository,
	logger zerolog.Logger,
) *Purger {
	return &Purger{
		access:   access,
		channels: channels,
		state:    state,
		links:    links,
		botCfg:   botCfg,
		pending:  pending,
		posts:    posts,
		logger:   logger,
	}
}

// PurgeTenant deletes every dependent table's rows for the bot. Deletes are
// independent point operations, not a transaction; each failure is logged and
// the remaining deletes still run.
func (p *Purger) PurgeTenant(ctx context.Context, botKey string) error {
	steps := []struct {
		name string
		fn   func(context.Context, string) error
	}{
		{"access_entries", p.access.DeleteByBot},
		{"required_channels", p.channels.Clear},
		{"gate_state", p.state.DeleteByBot},
		{"join_links", p.links.DeleteByBot},
		{"bot_config", p.botCfg.DeleteByBot},
		{"pending_actions", p.pending.DeleteByBot},
		{"post_channels", p.posts.Clear},
	}

	var firstErr error
	for _, step := range steps {
		if err := step.fn(ctx, botKey); err != nil {
			p.logger.Error().Err(err).
				Str("bot_key", botKey).
				Str("table", step.name).
				Msg("Cascade delete failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
