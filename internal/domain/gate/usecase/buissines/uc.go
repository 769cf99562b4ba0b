package buissines

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/internal/domain/gate/deps"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/gate/errors"
)

var slugRe = regexp.MustCompile(`^[A-Za-z0-9_]{5,}$`)

// UseCase implements the join gate: required-channel bookkeeping, the rotating
// display window, and fail-closed membership evaluation.
type UseCase struct {
	channels  deps.ChannelRepository
	state     deps.StateRepository
	linkCache deps.LinkCacheRepository
	showCount deps.ShowCountSource
	logger    zerolog.Logger
}

// NewUseCase creates a new gate use case
func NewUseCase(
	channels deps.ChannelRepository,
	state deps.StateRepository,
	linkCache deps.LinkCacheRepository,
	showCount deps.ShowCountSource,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		channels:  channels,
		state:     state,
		linkCache: linkCache,
		showCount: showCount,
		logger:    logger,
	}
}

// NormalizeChannel validates and canonicalizes a channel identifier:
// @username, -100… numeric ID, or a bare public slug of at least 5 characters.
func NormalizeChannel(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domainerrors.ErrInvalidChannel
	}
	if strings.HasPrefix(s, "@") {
		return s, nil
	}
	if strings.HasPrefix(s, "-") {
		rest := s[1:]
		if rest != "" && isDigits(rest) {
			return s, nil
		}
		return "", domainerrors.ErrInvalidChannel
	}
	if slugRe.MatchString(s) {
		return s, nil
	}
	return "", domainerrors.ErrInvalidChannel
}

// RequiredChannels returns the bot's required channels in rotation-base order
func (u *UseCase) RequiredChannels(ctx context.Context, botKey string) ([]string, error) {
	return u.channels.List(ctx, botKey)
}

// AddChannel adds a required channel after normalization
func (u *UseCase) AddChannel(ctx context.Context, botKey, channel string) (string, error) {
	normalized, err := NormalizeChannel(channel)
	if err != nil {
		return "", err
	}
	if err := u.channels.Add(ctx, botKey, normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// RemoveChannel deletes one required channel
func (u *UseCase) RemoveChannel(ctx context.Context, botKey, channel string) error {
	return u.channels.Remove(ctx, botKey, channel)
}

// ClearChannels deletes all required channels of a bot
func (u *UseCase) ClearChannels(ctx context.Context, botKey string) error {
	return u.channels.Clear(ctx, botKey)
}

// DisplaySubset computes the window of required channels to show: the full
// list rotated left by the stored per-(bot, token, user) offset, truncated to
// the configured window size. Empty when the bot has no required channels.
func (u *UseCase) DisplaySubset(ctx context.Context, botKey, token string, userID int64) ([]string, error) {
	required, err := u.channels.List(ctx, botKey)
	if err != nil {
		return nil, err
	}

	n := len(required)
	if n == 0 {
		return nil, nil
	}

	k := u.windowSize(ctx, botKey, n)

	offset, err := u.state.Offset(ctx, botKey, token, userID)
	if err != nil {
		return nil, err
	}
	offset = ((offset % n) + n) % n

	rotated := make([]string, 0, n)
	rotated = append(rotated, required[offset:]...)
	rotated = append(rotated, required[:offset]...)

	return rotated[:k], nil
}

// Rotate advances the stored offset by the window size, modulo the channel
// count, and returns the new offset. Called on explicit "show more" and on
// every failed join check so repeated attempts surface different channels.
func (u *UseCase) Rotate(ctx context.Context, botKey, token string, userID int64) (int, error) {
	required, err := u.channels.List(ctx, botKey)
	if err != nil {
		return 0, err
	}

	n := len(required)
	if n == 0 {
		return 0, nil
	}

	k := u.windowSize(ctx, botKey, n)

	offset, err := u.state.Offset(ctx, botKey, token, userID)
	if err != nil {
		return 0, err
	}

	next := (offset + k) % n
	if err := u.state.SetOffset(ctx, botKey, token, userID, next); err != nil {
		return 0, err
	}

	return next, nil
}

// IsJoinedAll evaluates membership against the FULL required set, never the
// display window. Any left/kicked status or query failure denies access.
func (u *UseCase) IsJoinedAll(ctx context.Context, membership deps.Membership, botKey string, userID int64) bool {
	required, err := u.channels.List(ctx, botKey)
	if err != nil {
		u.logger.Error().Err(err).
			Str("bot_key", botKey).
			Msg("Failed to load required channels, denying access")
		return false
	}

	if len(required) == 0 {
		return true
	}

	for _, channel := range required {
		joined, err := membership.IsMember(ctx, channel, userID)
		if err != nil {
			u.logger.Warn().Err(err).
				Str("bot_key", botKey).
				Str("channel", channel).
				Int64("user_id", userID).
				Msg("Membership check failed, denying access")
			return false
		}
		if !joined {
			return false
		}
	}

	return true
}

// ResolveJoinLink produces the URL for a join button. Public handles and bare
// slugs are derived without a network call and never cached; private numeric
// channels go through the invite link cache, falling back to link creation.
// Returns empty on failure so the caller omits the button.
func (u *UseCase) ResolveJoinLink(ctx context.Context, linker deps.InviteLinker, botKey, channel string) string {
	if strings.HasPrefix(channel, "@") {
		return "https://t.me/" + strings.TrimPrefix(channel, "@")
	}
	if !strings.HasPrefix(channel, "-") && slugRe.MatchString(channel) {
		return "https://t.me/" + channel
	}

	cached, err := u.linkCache.Get(ctx, botKey, channel)
	if err != nil {
		u.logger.Error().Err(err).
			Str("bot_key", botKey).
			Str("channel", channel).
			Msg("Failed to read join link cache")
	} else if cached != "" {
		return cached
	}

	link, err := linker.CreateInviteLink(ctx, channel)
	if err != nil || link == "" {
		if err != nil {
			u.logger.Warn().Err(err).
				Str("bot_key", botKey).
				Str("channel", channel).
				Msg("Failed to create invite link")
		}
		return ""
	}

	if err := u.linkCache.Put(ctx, botKey, channel, link); err != nil {
		u.logger.Error().Err(err).
			Str("bot_key", botKey).
			Str("channel", channel).
			Msg("Failed to cache invite link")
	}

	return link
}

// windowSize clamps the configured show count to [1, n]
func (u *UseCase) windowSize(ctx context.Context, botKey string, n int) int {
	k := u.showCount.ShowCount(ctx, botKey)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
