package buissines

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	"github.com/iyann1255/fsubmul/internal/domain/settings/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/settings/errors"
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

// mockBotConfigRepo is a mock implementation of deps.BotConfigRepository
type mockBotConfigRepo struct {
	values map[string]string
}

func (m *mockBotConfigRepo) Get(_ context.Context, botKey, key string) (string, error) {
	v, ok := m.values[botKey+"|"+key]
	if !ok {
		return "", domainerrors.ErrSettingNotFound
	}
	return v, nil
}

func (m *mockBotConfigRepo) Set(_ context.Context, botKey, key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[botKey+"|"+key] = value
	return nil
}

func (m *mockBotConfigRepo) DeleteByBot(_ context.Context, botKey string) error {
	return nil
}

// mockGlobalRepo is a mock implementation of deps.GlobalSettingRepository
type mockGlobalRepo struct {
	values map[string]string
}

func (m *mockGlobalRepo) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domainerrors.ErrSettingNotFound
	}
	return v, nil
}

func (m *mockGlobalRepo) Set(_ context.Context, key, value string) error {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *mockGlobalRepo) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

// mockPendingRepo is a mock implementation of deps.PendingActionRepository
type mockPendingRepo struct {
	actions map[string]*entities.PendingAction
}

func (m *mockPendingRepo) key(botKey string, adminID int64) string {
	return fmt.Sprintf("%s|%d", botKey, adminID)
}

func (m *mockPendingRepo) Set(_ context.Context, action *entities.PendingAction) error {
	if m.actions == nil {
		m.actions = make(map[string]*entities.PendingAction)
	}
	m.actions[m.key(action.BotKey, action.AdminID)] = action
	return nil
}

func (m *mockPendingRepo) Get(_ context.Context, botKey string, adminID int64) (*entities.PendingAction, error) {
	action, ok := m.actions[m.key(botKey, adminID)]
	if !ok {
		return nil, domainerrors.ErrNoPendingAction
	}
	return action, nil
}

func (m *mockPendingRepo) Clear(_ context.Context, botKey string, adminID int64) error {
	delete(m.actions, m.key(botKey, adminID))
	return nil
}

func (m *mockPendingRepo) DeleteByBot(_ context.Context, botKey string) error {
	return nil
}

func newTestSettings(botCfg *mockBotConfigRepo, global *mockGlobalRepo, fallback int) *UseCase {
	return NewUseCase(botCfg, global, &mockPendingRepo{}, &config.GateConfig{DefaultShowCount: fallback}, zerolog.Nop())
}

func TestShowCount(t *testing.T) {
	tests := []struct {
		name     string
		stored   string
		fallback int
		want     int
	}{
		{"stored value", "7", 4, 7},
		{"missing falls back", "", 4, 4},
		{"malformed falls back", "abc", 4, 4},
		{"clamped high", "99", 4, 20},
		{"clamped low", "0", 4, 1},
		{"fallback clamped too", "", 50, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBotConfigRepo{}
			if tt.stored != "" {
				repo.Set(context.Background(), "bot", "fsub_show_n", tt.stored)
			}
			uc := newTestSettings(repo, &mockGlobalRepo{}, tt.fallback)

			if got := uc.ShowCount(context.Background(), "bot"); got != tt.want {
				t.Errorf("ShowCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetShowCountValidation(t *testing.T) {
	uc := newTestSettings(&mockBotConfigRepo{}, &mockGlobalRepo{}, 4)
	ctx := context.Background()

	if err := uc.SetShowCount(ctx, "bot", 0); !pkgerrors.IsValidationError(err) {
		t.Errorf("expected validation error for 0, got %v", err)
	}
	if err := uc.SetShowCount(ctx, "bot", 21); !pkgerrors.IsValidationError(err) {
		t.Errorf("expected validation error for 21, got %v", err)
	}
	if err := uc.SetShowCount(ctx, "bot", 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got := uc.ShowCount(ctx, "bot"); got != 5 {
		t.Errorf("ShowCount after set = %d, want 5", got)
	}
}

func TestCustomThumbLifecycle(t *testing.T) {
	uc := newTestSettings(&mockBotConfigRepo{}, &mockGlobalRepo{}, 4)
	ctx := context.Background()

	if got := uc.CustomThumb(ctx); got != "" {
		t.Errorf("expected empty thumb, got %q", got)
	}

	if err := uc.SetCustomThumb(ctx, ""); !pkgerrors.IsValidationError(err) {
		t.Errorf("expected validation error for empty file ID, got %v", err)
	}

	if err := uc.SetCustomThumb(ctx, "file-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := uc.CustomThumb(ctx); got != "file-123" {
		t.Errorf("expected file-123, got %q", got)
	}

	if err := uc.DeleteCustomThumb(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := uc.CustomThumb(ctx); got != "" {
		t.Errorf("expected empty thumb after delete, got %q", got)
	}
}

func TestPendingActionLifecycle(t *testing.T) {
	uc := newTestSettings(&mockBotConfigRepo{}, &mockGlobalRepo{}, 4)
	ctx := context.Background()

	if _, err := uc.Pending(ctx, "bot", 7); !pkgerrors.IsNotFoundError(err) {
		t.Errorf("expected not-found, got %v", err)
	}

	if err := uc.SetPending(ctx, "bot", 7, "fsub_add", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := uc.Pending(ctx, "bot", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pending.Action != "fsub_add" {
		t.Errorf("expected fsub_add, got %q", pending.Action)
	}

	if err := uc.ClearPending(ctx, "bot", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Pending(ctx, "bot", 7); !pkgerrors.IsNotFoundError(err) {
		t.Errorf("expected not-found after clear, got %v", err)
	}
}
