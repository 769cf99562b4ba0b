package telegram

import (
	"context"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	accessuc "github.com/iyann1255/fsubmul/internal/domain/access/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/deps"
	fleeterrors "github.com/iyann1255/fsubmul/internal/domain/fleet/errors"
	gateuc "github.com/iyann1255/fsubmul/internal/domain/gate/usecase/buissines"
	settingsuc "github.com/iyann1255/fsubmul/internal/domain/settings/usecase/buissines"
	vaultuc "github.com/iyann1255/fsubmul/internal/domain/vault/usecase/buissines"
	infratg "github.com/iyann1255/fsubmul/internal/infrastructure/telegram"
)

// runtime adapts one bot's polling loop and session to the supervisor
type runtime struct {
	client *infratg.Client
}

// Run polls the platform for updates until the context is cancelled
func (r *runtime) Run(ctx context.Context) {
	r.client.Raw().Start(ctx)
}

// Close releases the platform session
func (r *runtime) Close(ctx context.Context) error {
	return r.client.Close(ctx)
}

// Factory builds worker runtimes with the full handler set bound to their bot
// key. The supervisor is attached after construction via Bind; construction
// and supervision depend on each other only at runtime, never at build time.
type Factory struct {
	archiveID int64
	timeout   time.Duration

	vault    *vaultuc.UseCase
	gate     *gateuc.UseCase
	access   *accessuc.UseCase
	settings *settingsuc.UseCase
	logger   zerolog.Logger

	manager Manager
}

// NewFactory creates a worker factory over the domain use cases
func NewFactory(
	archiveCfg *config.ArchiveConfig,
	telegramCfg *config.TelegramConfig,
	vault *vaultuc.UseCase,
	gate *gateuc.UseCase,
	access *accessuc.UseCase,
	settings *settingsuc.UseCase,
	logger zerolog.Logger,
) *Factory {
	return &Factory{
		archiveID: archiveCfg.ChannelID,
		timeout:   telegramCfg.CallTimeout,
		vault:     vault,
		gate:      gate,
		access:    access,
		settings:  settings,
		logger:    logger,
	}
}

// Bind attaches the supervisor so panel-driven fleet commands can reach it.
// Must be called before any worker is built.
func (f *Factory) Bind(manager Manager) {
	f.manager = manager
}

// Verify checks a credential against the platform and returns the bot's
// username. Any rejection or platform failure counts as an invalid credential.
func (f *Factory) Verify(ctx context.Context, token string) (string, error) {
	b, err := tgbot.New(token, tgbot.WithSkipGetMe())
	if err != nil {
		f.logger.Warn().Err(err).Msg("Credential verification failed")
		return "", fleeterrors.ErrInvalidCredential
	}

	client := infratg.NewClient(b, f.timeout, f.logger)
	username, err := client.Me(ctx)
	if err != nil {
		f.logger.Warn().Err(err).Msg("Credential verification failed")
		return "", fleeterrors.ErrInvalidCredential
	}

	return username, nil
}

// Build constructs a runtime for a verified identity
func (f *Factory) Build(token, username string, isRoot bool) (deps.Runtime, error) {
	h := &Handler{
		botKey:    username,
		username:  username,
		isRoot:    isRoot,
		archiveID: f.archiveID,
		manager:   f.manager,
		vault:     f.vault,
		gate:      f.gate,
		access:    f.access,
		settings:  f.settings,
		logger:    f.logger.With().Str("bot_key", username).Logger(),
	}

	b, err := tgbot.New(token,
		tgbot.WithSkipGetMe(),
		tgbot.WithDefaultHandler(h.onDefault),
	)
	if err != nil {
		f.logger.Warn().Err(err).Str("bot_key", username).Msg("Worker construction failed")
		return nil, fleeterrors.ErrInvalidCredential
	}

	client := infratg.NewClient(b, f.timeout, h.logger)
	h.client = client
	h.register(b)

	return &runtime{client: client}, nil
}
