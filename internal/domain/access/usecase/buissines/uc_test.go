package buissines

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	"github.com/iyann1255/fsubmul/internal/domain/access/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/access/errors"
)

// mockEntryRepo is a mock implementation of deps.EntryRepository
type mockEntryRepo struct {
	entries map[string]*entities.AccessEntry
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{entries: make(map[string]*entities.AccessEntry)}
}

func (m *mockEntryRepo) key(botKey string, userID int64) string {
	return fmt.Sprintf("%s|%d", botKey, userID)
}

func (m *mockEntryRepo) Get(_ context.Context, botKey string, userID int64) (*entities.AccessEntry, error) {
	entry, ok := m.entries[m.key(botKey, userID)]
	if !ok {
		return nil, domainerrors.ErrEntryNotFound
	}
	return entry, nil
}

func (m *mockEntryRepo) Upsert(_ context.Context, entry *entities.AccessEntry) error {
	m.entries[m.key(entry.BotKey, entry.UserID)] = entry
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, botKey string, userID int64) error {
	delete(m.entries, m.key(botKey, userID))
	return nil
}

func (m *mockEntryRepo) DeleteByBot(_ context.Context, botKey string) error {
	for k, entry := range m.entries {
		if entry.BotKey == botKey {
			delete(m.entries, k)
		}
	}
	return nil
}

func (m *mockEntryRepo) ListByBot(_ context.Context, botKey string) ([]entities.AccessEntry, error) {
	var out []entities.AccessEntry
	for _, entry := range m.entries {
		if entry.BotKey == botKey {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func newTestAccess(repo *mockEntryRepo, superadmins ...int64) *UseCase {
	return NewUseCase(repo, &config.AccessConfig{SuperadminIDs: superadmins}, zerolog.Nop())
}

func TestCanManageRoot(t *testing.T) {
	repo := newMockEntryRepo()
	uc := newTestAccess(repo, 100)
	ctx := context.Background()

	// even an owner entry on the root key does not help
	if err := uc.GrantOwner(ctx, "rootbot", 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !uc.CanManage(ctx, "rootbot", 100, true) {
		t.Error("superadmin must manage the root identity")
	}
	if uc.CanManage(ctx, "rootbot", 200, true) {
		t.Error("owner entry must not grant root management")
	}
}

func TestCanManageTenant(t *testing.T) {
	repo := newMockEntryRepo()
	uc := newTestAccess(repo, 100)
	ctx := context.Background()

	if err := uc.GrantOwner(ctx, "tenant", 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.AddEntries(ctx, "tenant", []int64{300}, entities.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		userID int64
		want   bool
	}{
		{"superadmin bypass", 100, true},
		{"owner", 200, true},
		{"admin", 300, true},
		{"stranger", 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uc.CanManage(ctx, "tenant", tt.userID, false); got != tt.want {
				t.Errorf("CanManage = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddEntriesNeverDowngradesOwner(t *testing.T) {
	repo := newMockEntryRepo()
	uc := newTestAccess(repo)
	ctx := context.Background()

	if err := uc.GrantOwner(ctx, "bot", 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.AddEntries(ctx, "bot", []int64{200, 300}, entities.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := repo.Get(ctx, "bot", 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Role != entities.RoleOwner {
		t.Errorf("owner was downgraded to %q", entry.Role)
	}

	entry, err = repo.Get(ctx, "bot", 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Role != entities.RoleAdmin {
		t.Errorf("expected admin, got %q", entry.Role)
	}
}

func TestAddEntriesRejectsUnknownRole(t *testing.T) {
	uc := newTestAccess(newMockEntryRepo())

	if err := uc.AddEntries(context.Background(), "bot", []int64{1}, "viewer"); err == nil {
		t.Error("expected validation error for unknown role")
	}
}

func TestRemoveEntryProtectsOwner(t *testing.T) {
	repo := newMockEntryRepo()
	uc := newTestAccess(repo)
	ctx := context.Background()

	if err := uc.GrantOwner(ctx, "bot", 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.AddEntries(ctx, "bot", []int64{300}, entities.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.RemoveEntry(ctx, "bot", 200); !errors.Is(err, domainerrors.ErrProtectedOwner) {
		t.Errorf("expected ErrProtectedOwner, got %v", err)
	}
	if err := uc.RemoveEntry(ctx, "bot", 300); err != nil {
		t.Errorf("admin removal failed: %v", err)
	}
	if _, err := repo.Get(ctx, "bot", 300); !errors.Is(err, domainerrors.ErrEntryNotFound) {
		t.Error("admin entry should be gone")
	}
}

func TestClearAllRemovesOwner(t *testing.T) {
	repo := newMockEntryRepo()
	uc := newTestAccess(repo)
	ctx := context.Background()

	if err := uc.GrantOwner(ctx, "bot", 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := uc.AddEntries(ctx, "bot", []int64{300, 400}, entities.RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := uc.ClearAll(ctx, "bot"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	remaining, err := uc.List(ctx, "bot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected no entries after ClearAll, got %d", len(remaining))
	}
}
