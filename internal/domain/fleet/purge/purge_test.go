package purge

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	accessentities "github.com/iyann1255/fsubmul/internal/domain/access/entities"
	settingsentities "github.com/iyann1255/fsubmul/internal/domain/settings/entities"
	vaultentities "github.com/iyann1255/fsubmul/internal/domain/vault/entities"
)

// stepRecorder counts cascade steps and injects one failure
type stepRecorder struct {
	calls   []string
	failOn  string
	failErr error
}

func (r *stepRecorder) hit(name, botKey string) error {
	r.calls = append(r.calls, name)
	if name == r.failOn {
		return r.failErr
	}
	return nil
}

type fakeAccessRepo struct{ rec *stepRecorder }

func (f *fakeAccessRepo) Get(_ context.Context, botKey string, userID int64) (*accessentities.AccessEntry, error) {
	return nil, nil
}
func (f *fakeAccessRepo) Upsert(_ context.Context, entry *accessentities.AccessEntry) error {
	return nil
}
func (f *fakeAccessRepo) Delete(_ context.Context, botKey string, userID int64) error { return nil }
func (f *fakeAccessRepo) DeleteByBot(_ context.Context, botKey string) error {
	return f.rec.hit("access", botKey)
}
func (f *fakeAccessRepo) ListByBot(_ context.Context, botKey string) ([]accessentities.AccessEntry, error) {
	return nil, nil
}

type fakeChannelRepo struct{ rec *stepRecorder }

func (f *fakeChannelRepo) Add(_ context.Context, botKey, channel string) error    { return nil }
func (f *fakeChannelRepo) Remove(_ context.Context, botKey, channel string) error { return nil }
func (f *fakeChannelRepo) Clear(_ context.Context, botKey string) error {
	return f.rec.hit("channels", botKey)
}
func (f *fakeChannelRepo) List(_ context.Context, botKey string) ([]string, error) {
	return nil, nil
}

type fakeStateRepo struct{ rec *stepRecorder }

func (f *fakeStateRepo) Offset(_ context.Context, botKey, token string, userID int64) (int, error) {
	return 0, nil
}
func (f *fakeStateRepo) SetOffset(_ context.Context, botKey, token string, userID int64, offset int) error {
	return nil
}
func (f *fakeStateRepo) DeleteByBot(_ context.Context, botKey string) error {
	return f.rec.hit("state", botKey)
}

type fakeLinkRepo struct{ rec *stepRecorder }

func (f *fakeLinkRepo) Get(_ context.Context, botKey, channelKey string) (string, error) {
	return "", nil
}
func (f *fakeLinkRepo) Put(_ context.Context, botKey, channelKey, inviteLink string) error {
	return nil
}
func (f *fakeLinkRepo) DeleteByBot(_ context.Context, botKey string) error {
	return f.rec.hit("links", botKey)
}

type fakeBotCfgRepo struct{ rec *stepRecorder }

func (f *fakeBotCfgRepo) Set(_ context.Context, botKey, cfgKey, cfgVal string) error { return nil }
func (f *fakeBotCfgRepo) Get(_ context.Context, botKey, cfgKey string) (string, error) {
	return "", nil
}
func (f *fakeBotCfgRepo) DeleteByBot(_ context.Context, botKey string) error {
	return f.rec.hit("botcfg", botKey)
}

type fakePendingRepo struct{ rec *stepRecorder }

func (f *fakePendingRepo) Set(_ context.Context, action *settingsentities.PendingAction) error {
	return nil
}
func (f *fakePendingRepo) Get(_ context.Context, botKey string, adminID int64) (*settingsentities.PendingAction, error) {
	return nil, nil
}
func (f *fakePendingRepo) Clear(_ context.Context, botKey string, adminID int64) error { return nil }
func (f *fakePendingRepo) DeleteByBot(_ context.Context, botKey string) error {
	return f.rec.hit("pending", botKey)
}

type fakePostRepo struct{ rec *stepRecorder }

func (f *fakePostRepo) Add(_ context.Context, target *vaultentities.PostChannel) error { return nil }
func (f *fakePostRepo) Remove(_ context.Context, botKey string, channelID int64) error {
	return nil
}
func (f *fakePostRepo) Clear(_ context.Context, botKey string) error {
	return f.rec.hit("posts", botKey)
}
func (f *fakePostRepo) List(_ context.Context, botKey string) ([]vaultentities.PostChannel, error) {
	return nil, nil
}

func newTestPurger(rec *stepRecorder) *Purger {
	return New(
		&fakeAccessRepo{rec: rec},
		&fakeChannelRepo{rec: rec},
		&fakeStateRepo{rec: rec},
		&fakeLinkRepo{rec: rec},
		&fakeBotCfgRepo{rec: rec},
		&fakePendingRepo{rec: rec},
		&fakePostRepo{rec: rec},
		zerolog.Nop(),
	)
}

func TestPurgeTenantRunsEveryStep(t *testing.T) {
	rec := &stepRecorder{}
	purger := newTestPurger(rec)

	if err := purger.PurgeTenant(context.Background(), "bot"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.calls) != 7 {
		t.Errorf("expected 7 cascade steps, got %d: %v", len(rec.calls), rec.calls)
	}
}

func TestPurgeTenantContinuesPastFailure(t *testing.T) {
	injected := errors.New("table locked")
	rec := &stepRecorder{failOn: "state", failErr: injected}
	purger := newTestPurger(rec)

	err := purger.PurgeTenant(context.Background(), "bot")
	if !errors.Is(err, injected) {
		t.Errorf("expected injected error surfaced, got %v", err)
	}
	if len(rec.calls) != 7 {
		t.Errorf("a failing step must not stop the cascade, got %d steps: %v", len(rec.calls), rec.calls)
	}
}
