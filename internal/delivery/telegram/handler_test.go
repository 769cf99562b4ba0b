package telegram

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	gateuc "github.com/iyann1255/fsubmul/internal/domain/gate/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
	vaultuc "github.com/iyann1255/fsubmul/internal/domain/vault/usecase/buissines"
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

// fakePlatform records the platform calls a handler makes
type fakePlatform struct {
	members      map[string]bool
	memberChecks []string

	copies     int
	copiedFrom int64
	copiedMsg  int

	texts   []string
	markups []models.ReplyMarkup
	edits   []models.ReplyMarkup
	answers int
}

func (f *fakePlatform) CopyMessage(_ context.Context, _, fromChatID int64, messageID int) (int, error) {
	f.copies++
	f.copiedFrom = fromChatID
	f.copiedMsg = messageID
	return messageID + 1, nil
}

func (f *fakePlatform) IsMember(_ context.Context, channel string, _ int64) (bool, error) {
	f.memberChecks = append(f.memberChecks, channel)
	return f.members[channel], nil
}

func (f *fakePlatform) CreateInviteLink(_ context.Context, channel string) (string, error) {
	return "https://t.me/+" + channel, nil
}

func (f *fakePlatform) SendText(_ context.Context, _ int64, text string) error {
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakePlatform) SendMarkup(_ context.Context, _ int64, text string, kb models.ReplyMarkup) error {
	f.texts = append(f.texts, text)
	f.markups = append(f.markups, kb)
	return nil
}

func (f *fakePlatform) SendTextLink(_ context.Context, _ int64, _, _, _ string) error { return nil }

func (f *fakePlatform) SendPhotoLink(_ context.Context, _ int64, _, _, _, _ string) error {
	return nil
}

func (f *fakePlatform) SendPhoto(_ context.Context, _ int64, _, _ string) error { return nil }

func (f *fakePlatform) EditText(_ context.Context, _ int64, _ int, _ string, kb models.ReplyMarkup) error {
	f.edits = append(f.edits, kb)
	return nil
}

func (f *fakePlatform) EditMarkup(_ context.Context, _ int64, _ int, kb models.ReplyMarkup) error {
	f.edits = append(f.edits, kb)
	return nil
}

func (f *fakePlatform) AnswerCallback(_ context.Context, _, _ string, _ bool) error {
	f.answers++
	return nil
}

// fakeChannelStore is an in-memory gate deps.ChannelRepository
type fakeChannelStore struct {
	byBot map[string][]string
}

func (s *fakeChannelStore) Add(_ context.Context, botKey, channel string) error {
	s.byBot[botKey] = append(s.byBot[botKey], channel)
	return nil
}

func (s *fakeChannelStore) Remove(_ context.Context, botKey, channel string) error { return nil }

func (s *fakeChannelStore) Clear(_ context.Context, botKey string) error {
	delete(s.byBot, botKey)
	return nil
}

func (s *fakeChannelStore) List(_ context.Context, botKey string) ([]string, error) {
	return s.byBot[botKey], nil
}

// fakeStateStore records rotation offsets keyed by (bot, token, user)
type fakeStateStore struct {
	offsets map[string]int
}

func stateKey(botKey, token string, userID int64) string {
	return fmt.Sprintf("%s|%s|%d", botKey, token, userID)
}

func (s *fakeStateStore) Offset(_ context.Context, botKey, token string, userID int64) (int, error) {
	return s.offsets[stateKey(botKey, token, userID)], nil
}

func (s *fakeStateStore) SetOffset(_ context.Context, botKey, token string, userID int64, offset int) error {
	s.offsets[stateKey(botKey, token, userID)] = offset
	return nil
}

func (s *fakeStateStore) DeleteByBot(_ context.Context, botKey string) error { return nil }

type fakeLinkStore struct{}

func (fakeLinkStore) Get(_ context.Context, _, _ string) (string, error) { return "", nil }
func (fakeLinkStore) Put(_ context.Context, _, _, _ string) error        { return nil }
func (fakeLinkStore) DeleteByBot(_ context.Context, _ string) error      { return nil }

type staticShowCount int

func (s staticShowCount) ShowCount(_ context.Context, _ string) int { return int(s) }

// fakeContentStore is an in-memory vault deps.ContentRepository
type fakeContentStore struct {
	items map[string]*entities.ContentItem
}

func (s *fakeContentStore) Save(_ context.Context, item *entities.ContentItem) error {
	s.items[item.BotKey+"|"+item.Token] = item
	return nil
}

func (s *fakeContentStore) Get(_ context.Context, botKey, token string) (*entities.ContentItem, error) {
	item, ok := s.items[botKey+"|"+token]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("content not found")
	}
	return item, nil
}

// newCrossTenantHandler builds a handler for bot "beta" while the content and
// required channels of token "alpha.secret" belong to tenant "alpha"
func newCrossTenantHandler(t *testing.T, fake *fakePlatform, state *fakeStateStore) *Handler {
	t.Helper()

	channels := &fakeChannelStore{byBot: map[string][]string{
		"alpha": {"@alpha_one", "@alpha_two"},
		"beta":  {"@beta_only"},
	}}
	gate := gateuc.NewUseCase(channels, state, fakeLinkStore{}, staticShowCount(2), zerolog.Nop())

	content := &fakeContentStore{items: map[string]*entities.ContentItem{
		"alpha|alpha.secret": {BotKey: "alpha", Token: "alpha.secret", ArchiveMessageID: 7},
	}}
	vault := vaultuc.NewUseCase(content, nil, nil, nil, nil, &config.PublishConfig{}, zerolog.Nop())

	return &Handler{
		botKey:    "beta",
		username:  "beta",
		archiveID: -100999,
		client:    fake,
		vault:     vault,
		gate:      gate,
		logger:    zerolog.Nop(),
	}
}

func TestRedeemGatesOnTokenNamespace(t *testing.T) {
	fake := &fakePlatform{members: map[string]bool{"@beta_only": true}}
	state := &fakeStateStore{offsets: map[string]int{}}
	h := newCrossTenantHandler(t, fake, state)

	h.redeem(context.Background(), 1, 9, "alpha.secret")

	for _, channel := range fake.memberChecks {
		if channel == "@beta_only" {
			t.Error("gate consulted the receiving bot's channels")
		}
	}
	if len(fake.memberChecks) == 0 || fake.memberChecks[0] != "@alpha_one" {
		t.Fatalf("expected the minting tenant's channels checked, got %v", fake.memberChecks)
	}
	if fake.copies != 0 {
		t.Error("content must not be delivered while the gate denies")
	}

	if len(fake.markups) != 1 {
		t.Fatalf("expected one join prompt, got %d", len(fake.markups))
	}
	kb, ok := fake.markups[0].(*models.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) == 0 {
		t.Fatalf("expected an inline join keyboard, got %+v", fake.markups[0])
	}
	if kb.InlineKeyboard[0][0].URL != "https://t.me/alpha_one" {
		t.Errorf("join buttons must link the minting tenant's channels, got %q", kb.InlineKeyboard[0][0].URL)
	}
}

func TestRedeemDeliversAcrossTenants(t *testing.T) {
	fake := &fakePlatform{members: map[string]bool{"@alpha_one": true, "@alpha_two": true}}
	state := &fakeStateStore{offsets: map[string]int{}}
	h := newCrossTenantHandler(t, fake, state)

	h.redeem(context.Background(), 1, 9, "alpha.secret")

	if fake.copies != 1 || fake.copiedFrom != -100999 || fake.copiedMsg != 7 {
		t.Errorf("expected the archived message copied once, got copies=%d from=%d msg=%d",
			fake.copies, fake.copiedFrom, fake.copiedMsg)
	}
}

func TestCheckRotatesUnderTokenNamespace(t *testing.T) {
	fake := &fakePlatform{members: map[string]bool{}}
	state := &fakeStateStore{offsets: map[string]int{}}
	h := newCrossTenantHandler(t, fake, state)

	h.onCheck(context.Background(), "cb1", 1, 5, 9, "alpha.secret")

	if _, ok := state.offsets[stateKey("alpha", "alpha.secret", 9)]; !ok {
		t.Errorf("rotation state must live under the minting tenant, got %v", state.offsets)
	}
	for k := range state.offsets {
		if strings.HasPrefix(k, "beta|") {
			t.Errorf("rotation state stored under the receiving bot: %v", state.offsets)
		}
	}
	if fake.answers == 0 {
		t.Error("callback must be answered")
	}
}
