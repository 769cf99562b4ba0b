package buissines

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/internal/domain/fleet/deps"
	"github.com/iyann1255/fsubmul/internal/domain/fleet/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/fleet/errors"
)

// mockBotRepo is a mock implementation of deps.BotRepository
type mockBotRepo struct {
	mu   sync.Mutex
	bots map[string]*entities.BotIdentity
}

func newMockBotRepo() *mockBotRepo {
	return &mockBotRepo{bots: make(map[string]*entities.BotIdentity)}
}

func (m *mockBotRepo) Get(_ context.Context, botKey string) (*entities.BotIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.bots[botKey]
	if !ok {
		return nil, domainerrors.ErrBotNotFound
	}
	return identity, nil
}

func (m *mockBotRepo) Upsert(_ context.Context, identity *entities.BotIdentity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bots[identity.BotKey] = identity
	return nil
}

func (m *mockBotRepo) SetEnabled(_ context.Context, botKey string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if identity, ok := m.bots[botKey]; ok {
		identity.Enabled = enabled
	}
	return nil
}

func (m *mockBotRepo) Delete(_ context.Context, botKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bots, botKey)
	return nil
}

func (m *mockBotRepo) List(_ context.Context) ([]entities.BotIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.BotIdentity
	for _, identity := range m.bots {
		out = append(out, *identity)
	}
	return out, nil
}

func (m *mockBotRepo) ListEnabled(_ context.Context) ([]entities.BotIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entities.BotIdentity
	for _, identity := range m.bots {
		if identity.Enabled {
			out = append(out, *identity)
		}
	}
	return out, nil
}

// mockRuntime is a mock implementation of deps.Runtime
type mockRuntime struct {
	closeErr  error
	exitEarly bool
	closed    atomic.Bool
}

func (m *mockRuntime) Run(ctx context.Context) {
	if m.exitEarly {
		return
	}
	<-ctx.Done()
}

func (m *mockRuntime) Close(_ context.Context) error {
	m.closed.Store(true)
	return m.closeErr
}

// mockFactory is a mock implementation of deps.WorkerFactory. Tokens look
// like "tok:<username>"; anything else fails verification.
type mockFactory struct {
	builds    atomic.Int64
	closeErr  error
	exitEarly bool
	lastBuilt *mockRuntime
}

func (m *mockFactory) Verify(_ context.Context, token string) (string, error) {
	username, ok := strings.CutPrefix(token, "tok:")
	if !ok || username == "" {
		return "", domainerrors.ErrInvalidCredential
	}
	return username, nil
}

func (m *mockFactory) Build(token, username string, isRoot bool) (deps.Runtime, error) {
	m.builds.Add(1)
	rt := &mockRuntime{closeErr: m.closeErr, exitEarly: m.exitEarly}
	m.lastBuilt = rt
	return rt, nil
}

// mockGranter is a mock implementation of deps.AccessGranter
type mockGranter struct {
	grants []int64
}

func (m *mockGranter) GrantOwner(_ context.Context, botKey string, userID int64) error {
	m.grants = append(m.grants, userID)
	return nil
}

// mockPurger is a mock implementation of deps.TenantPurger
type mockPurger struct {
	purged []string
}

func (m *mockPurger) PurgeTenant(_ context.Context, botKey string) error {
	m.purged = append(m.purged, botKey)
	return nil
}

// mockEvents is a mock implementation of deps.EventPublisher
type mockEvents struct {
	mu     sync.Mutex
	events []string
}

func (m *mockEvents) SendBotLifecycle(_ context.Context, event, botKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event+":"+botKey)
	return nil
}

func newTestSupervisor(repo *mockBotRepo, factory *mockFactory) (*UseCase, *mockGranter, *mockPurger) {
	granter := &mockGranter{}
	purger := &mockPurger{}
	uc := NewUseCase(repo, factory, granter, purger, &mockEvents{}, zerolog.Nop())
	return uc, granter, purger
}

func TestStartIdempotentConcurrent(t *testing.T) {
	factory := &mockFactory{}
	uc, _, _ := newTestSupervisor(newMockBotRepo(), factory)
	defer uc.StopAll(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := uc.Start(context.Background(), "tok:alice")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if key != "alice" {
				t.Errorf("unexpected key %q", key)
			}
		}()
	}
	wg.Wait()

	if got := factory.builds.Load(); got != 1 {
		t.Errorf("expected exactly one worker build, got %d", got)
	}
	if !uc.IsRunning("alice") {
		t.Error("worker must be running after start")
	}
}

func TestStartRejectsBadCredential(t *testing.T) {
	uc, _, _ := newTestSupervisor(newMockBotRepo(), &mockFactory{})

	if _, err := uc.Start(context.Background(), "garbage"); !errors.Is(err, domainerrors.ErrInvalidCredential) {
		t.Errorf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestStopRemovesEntryDespiteTeardownFailure(t *testing.T) {
	repo := newMockBotRepo()
	factory := &mockFactory{closeErr: errors.New("session close failed")}
	uc, _, _ := newTestSupervisor(repo, factory)
	ctx := context.Background()

	if _, err := uc.Register(ctx, "tok:alice", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.Stop(ctx, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if uc.IsRunning("alice") {
		t.Error("worker must not be running after stop, even when teardown fails")
	}

	identity, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Enabled {
		t.Error("stop must persist enabled=false")
	}
}

func TestIsRunningAfterLoopExit(t *testing.T) {
	factory := &mockFactory{exitEarly: true}
	uc, _, _ := newTestSupervisor(newMockBotRepo(), factory)

	if _, err := uc.Start(context.Background(), "tok:alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for uc.IsRunning("alice") {
		select {
		case <-deadline:
			t.Fatal("worker still reported running after its loop exited")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRestartAfterLoopExit(t *testing.T) {
	factory := &mockFactory{exitEarly: true}
	uc, _, _ := newTestSupervisor(newMockBotRepo(), factory)
	ctx := context.Background()

	if _, err := uc.Start(ctx, "tok:alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	// the stale entry is reclaimed and a fresh worker built
	if _, err := uc.Start(ctx, "tok:alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := factory.builds.Load(); got != 2 {
		t.Errorf("expected 2 builds after restart, got %d", got)
	}
}

func TestRegisterGrantsOwnerAndPersists(t *testing.T) {
	repo := newMockBotRepo()
	uc, granter, _ := newTestSupervisor(repo, &mockFactory{})
	ctx := context.Background()
	defer uc.StopAll(ctx)

	key, err := uc.Register(ctx, "tok:alice", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "alice" {
		t.Errorf("unexpected key %q", key)
	}

	identity, err := repo.Get(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !identity.Enabled || identity.OwnerID != 42 {
		t.Errorf("identity not persisted as expected: %+v", identity)
	}

	if len(granter.grants) != 1 || granter.grants[0] != 42 {
		t.Errorf("expected owner grant for 42, got %v", granter.grants)
	}
}

func TestRemovePurgesTenant(t *testing.T) {
	repo := newMockBotRepo()
	uc, _, purger := newTestSupervisor(repo, &mockFactory{})
	ctx := context.Background()

	if _, err := uc.Register(ctx, "tok:alice", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.Remove(ctx, "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.Get(ctx, "alice"); !errors.Is(err, domainerrors.ErrBotNotFound) {
		t.Error("identity must be deleted")
	}
	if len(purger.purged) != 1 || purger.purged[0] != "alice" {
		t.Errorf("expected purge for alice, got %v", purger.purged)
	}
	if uc.IsRunning("alice") {
		t.Error("worker must not be running after removal")
	}
}

func TestStopUnknownBot(t *testing.T) {
	uc, _, _ := newTestSupervisor(newMockBotRepo(), &mockFactory{})

	if err := uc.Stop(context.Background(), "ghost"); !errors.Is(err, domainerrors.ErrBotNotFound) {
		t.Errorf("expected ErrBotNotFound, got %v", err)
	}
}

func TestLoadEnabledIsolatesFailures(t *testing.T) {
	repo := newMockBotRepo()
	ctx := context.Background()

	// one identity with a broken credential, one healthy
	repo.Upsert(ctx, &entities.BotIdentity{BotKey: "broken", Token: "garbage", Username: "broken", Enabled: true})
	repo.Upsert(ctx, &entities.BotIdentity{BotKey: "alice", Token: "tok:alice", Username: "alice", Enabled: true})
	repo.Upsert(ctx, &entities.BotIdentity{BotKey: "off", Token: "tok:off", Username: "off", Enabled: false})

	factory := &mockFactory{}
	uc, _, _ := newTestSupervisor(repo, factory)
	defer uc.StopAll(ctx)

	uc.LoadEnabled(ctx)

	if !uc.IsRunning("alice") {
		t.Error("healthy identity must start despite the broken one")
	}
	if uc.IsRunning("broken") {
		t.Error("broken credential must not produce a worker")
	}
	if uc.IsRunning("off") {
		t.Error("disabled identity must not start")
	}
}

func TestListCombinesStoreAndRuntime(t *testing.T) {
	repo := newMockBotRepo()
	uc, _, _ := newTestSupervisor(repo, &mockFactory{})
	ctx := context.Background()
	defer uc.StopAll(ctx)

	if _, err := uc.Register(ctx, "tok:alice", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	repo.Upsert(ctx, &entities.BotIdentity{BotKey: "bob", Token: "tok:bob", Username: "bob", Enabled: false})

	statuses, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byKey := make(map[string]entities.BotStatus, len(statuses))
	for _, status := range statuses {
		byKey[status.BotKey] = status
	}

	if !byKey["alice"].Running {
		t.Error("alice must report running")
	}
	if byKey["bob"].Running {
		t.Error("bob must not report running")
	}
}

func TestStopAllStopsEverything(t *testing.T) {
	factory := &mockFactory{}
	uc, _, _ := newTestSupervisor(newMockBotRepo(), factory)
	ctx := context.Background()

	if _, err := uc.StartRoot(ctx, "tok:root"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Start(ctx, "tok:alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc.StopAll(ctx)

	if uc.IsRunning("root") || uc.IsRunning("alice") {
		t.Error("no worker may survive StopAll")
	}
}
