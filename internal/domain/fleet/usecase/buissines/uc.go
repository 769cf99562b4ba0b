package buissines

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/internal/domain/fleet/deps"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/entities"
)

// loopExitWait bounds how long Stop waits for a cancelled event loop
const loopExitWait = 5 * time.Second

// worker is one running bot identity: its runtime, loop cancellation and
// loop-exit signal
type worker struct {
	key     string
	runtime deps.Runtime
	cancel  context.CancelFunc
	done    chan struct{}
}

// running reports whether the event loop has not yet exited
func (w *worker) running() bool {
	select {
	case <-w.done:
		return false
	default:
		return true
	}
}

// UseCase is the supervisor: it owns the set of running workers and
// guarantees at most one running worker per bot key. The workers map is the
// only state shared across tenants; the mutex covers map transitions only,
// never platform calls.
type UseCase struct {
	bots    deps.BotRepository
	factory deps.WorkerFactory
	access  deps.AccessGranter
	purger  deps.TenantPurger
	events  deps.EventPublisher
	logger  zerolog.Logger

	mu      sync.Mutex
	workers map[string]*worker
	rootKey string
}

// NewUseCase creates a new fleet use case
func NewUseCase(
	bots deps.BotRepository,
	factory deps.WorkerFactory,
	access deps.AccessGranter,
	purger deps.TenantPurger,
	events deps.EventPublisher,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		bots:    bots,
		factory: factory,
		access:  access,
		purger:  purger,
		events:  events,
		logger:  logger,
		workers: make(map[string]*worker),
	}
}

// Start verifies the credential against the platform, derives the bot key
// from the returned identity and ensures a running worker for it. Starting an
// already-running key is a no-op returning the same key.
func (u *UseCase) Start(ctx context.Context, token string) (string, error) {
	username, err := u.factory.Verify(ctx, token)
	if err != nil {
		return "", err
	}

	return u.startWorker(ctx, token, username, false)
}

// StartRoot brings up the always-on manager identity from deployment config
func (u *UseCase) StartRoot(ctx context.Context, token string) (string, error) {
	username, err := u.factory.Verify(ctx, token)
	if err != nil {
		return "", err
	}

	key, err := u.startWorker(ctx, token, username, true)
	if err != nil {
		return "", err
	}

	u.mu.Lock()
	u.rootKey = key
	u.mu.Unlock()

	return key, nil
}

// startWorker registers and launches the event loop for a verified identity
func (u *UseCase) startWorker(ctx context.Context, token, username string, isRoot bool) (string, error) {
	key := username

	u.mu.Lock()
	if existing, ok := u.workers[key]; ok {
		if existing.running() {
			u.mu.Unlock()
			u.logger.Debug().Str("bot_key", key).Msg("Worker already running")
			return key, nil
		}
		// stale entry from an abnormally terminated loop; reclaim it
		existing.cancel()
		delete(u.workers, key)
	}

	runtime, err := u.factory.Build(token, username, isRoot)
	if err != nil {
		u.mu.Unlock()
		return "", err
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	w := &worker{
		key:     key,
		runtime: runtime,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	u.workers[key] = w
	u.mu.Unlock()

	go func() {
		defer close(w.done)
		runtime.Run(loopCtx)
		u.logger.Info().Str("bot_key", key).Msg("Worker event loop exited")
	}()

	u.logger.Info().Str("bot_key", key).Bool("root", isRoot).Msg("Worker started")

	if err := u.events.SendBotLifecycle(ctx, "started", key); err != nil {
		u.logger.Debug().Err(err).Msg("Lifecycle audit event not delivered")
	}

	return key, nil
}

// StopWorker halts one worker's event loop and releases its platform session.
// The key is removed from the active set before teardown, and teardown steps
// run independently: a failing step never blocks the remaining ones, so a
// misbehaving tenant can neither block the supervisor nor leave a phantom
// running entry.
func (u *UseCase) StopWorker(ctx context.Context, botKey string) {
	u.mu.Lock()
	w, ok := u.workers[botKey]
	if ok {
		delete(u.workers, botKey)
	}
	u.mu.Unlock()

	if !ok {
		return
	}

	var failures []string

	w.cancel()
	select {
	case <-w.done:
	case <-time.After(loopExitWait):
		failures = append(failures, "event loop did not exit in time")
	}

	if err := w.runtime.Close(ctx); err != nil {
		failures = append(failures, fmt.Sprintf("close session: %v", err))
	}

	if len(failures) > 0 {
		u.logger.Warn().
			Str("bot_key", botKey).
			Strs("failures", failures).
			Msg("Worker teardown completed with failures")
	} else {
		u.logger.Info().Str("bot_key", botKey).Msg("Worker stopped")
	}

	if err := u.events.SendBotLifecycle(ctx, "stopped", botKey); err != nil {
		u.logger.Debug().Err(err).Msg("Lifecycle audit event not delivered")
	}
}

// IsRunning reports whether a worker for the key is registered and its event
// loop has not exited
func (u *UseCase) IsRunning(botKey string) bool {
	u.mu.Lock()
	w, ok := u.workers[botKey]
	u.mu.Unlock()
	return ok && w.running()
}

// LoadEnabled starts every enabled identity from the store. Each identity is
// started independently; one bad credential never prevents the others.
func (u *UseCase) LoadEnabled(ctx context.Context) {
	identities, err := u.bots.ListEnabled(ctx)
	if err != nil {
		u.logger.Error().Err(err).Msg("Failed to list enabled bots")
		return
	}

	for _, identity := range identities {
		if _, err := u.Start(ctx, identity.Token); err != nil {
			u.logger.Warn().Err(err).
				Str("bot_key", identity.BotKey).
				Msg("Failed to start enabled bot")
		}
	}
}

// Register verifies a new credential, persists the identity, grants the
// registrant the owner role and starts the worker
func (u *UseCase) Register(ctx context.Context, token string, registrantID int64) (string, error) {
	username, err := u.factory.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	key := username

	if err := u.bots.Upsert(ctx, &entities.BotIdentity{
		BotKey:   key,
		Token:    token,
		Username: username,
		Enabled:  true,
		OwnerID:  registrantID,
	}); err != nil {
		return "", err
	}

	if err := u.access.GrantOwner(ctx, key, registrantID); err != nil {
		return "", err
	}

	if err := u.events.SendBotLifecycle(ctx, "registered", key); err != nil {
		u.logger.Debug().Err(err).Msg("Lifecycle audit event not delivered")
	}

	return u.startWorker(ctx, token, username, false)
}

// Stop disables the identity and halts its worker
func (u *UseCase) Stop(ctx context.Context, botKey string) error {
	if _, err := u.bots.Get(ctx, botKey); err != nil {
		return err
	}

	if err := u.bots.SetEnabled(ctx, botKey, false); err != nil {
		return err
	}

	u.StopWorker(ctx, botKey)
	return nil
}

// Remove halts the worker, deletes the identity and cascades dependent state
func (u *UseCase) Remove(ctx context.Context, botKey string) error {
	if _, err := u.bots.Get(ctx, botKey); err != nil {
		return err
	}

	u.StopWorker(ctx, botKey)

	if err := u.bots.Delete(ctx, botKey); err != nil {
		return err
	}

	if err := u.purger.PurgeTenant(ctx, botKey); err != nil {
		u.logger.Error().Err(err).
			Str("bot_key", botKey).
			Msg("Tenant cascade delete incomplete")
	}

	if err := u.events.SendBotLifecycle(ctx, "removed", botKey); err != nil {
		u.logger.Debug().Err(err).Msg("Lifecycle audit event not delivered")
	}

	return nil
}

// List combines persisted identities with runtime state
func (u *UseCase) List(ctx context.Context) ([]entities.BotStatus, error) {
	identities, err := u.bots.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]entities.BotStatus, 0, len(identities))
	for _, identity := range identities {
		statuses = append(statuses, entities.BotStatus{
			BotKey:   identity.BotKey,
			Username: identity.Username,
			Enabled:  identity.Enabled,
			Running:  u.IsRunning(identity.BotKey),
		})
	}
	return statuses, nil
}

// StopAll halts every worker, tenants first and the root identity last
func (u *UseCase) StopAll(ctx context.Context) {
	u.mu.Lock()
	root := u.rootKey
	keys := make([]string, 0, len(u.workers))
	for key := range u.workers {
		if key != root {
			keys = append(keys, key)
		}
	}
	u.mu.Unlock()

	for _, key := range keys {
		u.StopWorker(ctx, key)
	}
	if root != "" {
		u.StopWorker(ctx, root)
	}
}
