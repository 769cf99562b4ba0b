package buissines

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iyann1255/fsubmul/config"
	"github.com/iyann1255/fsubmul/internal/domain/vault/deps"
	"github.com/iyann1255/fsubmul/internal/domain/vault/dto"
	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
	domainerrors "github.com/iyann1255/fsubmul/internal/domain/vault/errors"
)

const (
	tokenSeparator = "."
	tokenEntropy   = 16
)

// UseCase implements the token-addressed content vault
type UseCase struct {
	content deps.ContentRepository
	uploads deps.UploadRepository
	posts   deps.PostChannelRepository
	thumbs  deps.ThumbSource
	events  deps.EventPublisher
	caption string
	button  string
	logger  zerolog.Logger
}

// NewUseCase creates a new vault use case
func NewUseCase(
	content deps.ContentRepository,
	uploads deps.UploadRepository,
	posts deps.PostChannelRepository,
	thumbs deps.ThumbSource,
	events deps.EventPublisher,
	cfg *config.PublishConfig,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		content: content,
		uploads: uploads,
		posts:   posts,
		thumbs:  thumbs,
		events:  events,
		caption: cfg.CaptionTemplate,
		button:  cfg.ButtonLabel,
		logger:  logger,
	}
}

// Mint produces a new content token namespaced by the bot key:
// <bot-key>.<base64url random suffix>. Uniqueness rests on entropy; no
// collision check is performed.
func Mint(botKey string) string {
	buf := make([]byte, tokenEntropy)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure means the process cannot mint safely
		panic(fmt.Sprintf("vault: entropy source failed: %v", err))
	}
	return botKey + tokenSeparator + base64.RawURLEncoding.EncodeToString(buf)
}

// Parse splits a token on the first separator into (namespace, suffix). A
// token without a separator, or with an empty side, yields an empty namespace
// and the original string as suffix; callers default the namespace to the
// current bot's key. The namespace being embedded in the token is what lets a
// token minted by one tenant be redeemed through another tenant's entry point.
func Parse(token string) (string, string) {
	idx := strings.Index(token, tokenSeparator)
	if idx <= 0 || idx == len(token)-1 {
		return "", token
	}
	return token[:idx], token[idx+1:]
}

// Namespace resolves a raw token against the current bot: the embedded
// namespace when present, the current bot's key otherwise.
func Namespace(currentBotKey, token string) string {
	ns, _ := Parse(token)
	if ns == "" {
		return currentBotKey
	}
	return ns
}

// DeepLink builds the public redemption link for a token
func DeepLink(botUsername, token string) string {
	return "https://t.me/" + strings.TrimPrefix(botUsername, "@") + "?start=" + token
}

// SaveContent stores the archive reference of a minted token
func (u *UseCase) SaveContent(ctx context.Context, botKey, token string, archiveMessageID int) error {
	return u.content.Save(ctx, &entities.ContentItem{
		BotKey:           botKey,
		Token:            token,
		ArchiveMessageID: archiveMessageID,
	})
}

// Content resolves a token to its archive reference
func (u *UseCase) Content(ctx context.Context, botKey, token string) (*entities.ContentItem, error) {
	return u.content.Get(ctx, botKey, token)
}

// OpenUpload creates the transient session between ingestion and publish
func (u *UseCase) OpenUpload(ctx context.Context, botKey, token string, uploaderID int64, thumbFileID string) error {
	return u.uploads.Save(ctx, &entities.UploadSession{
		BotKey:      botKey,
		Token:       token,
		UploaderID:  uploaderID,
		ThumbFileID: thumbFileID,
	})
}

// Upload retrieves an open upload session
func (u *UseCase) Upload(ctx context.Context, botKey, token string) (*entities.UploadSession, error) {
	return u.uploads.Get(ctx, botKey, token)
}

// CloseUpload removes an upload session (publish or explicit cancel)
func (u *UseCase) CloseUpload(ctx context.Context, botKey, token string) error {
	return u.uploads.Delete(ctx, botKey, token)
}

// AddPostChannel stores a publish target
func (u *UseCase) AddPostChannel(ctx context.Context, botKey string, channelID int64, title string) error {
	if title == "" {
		title = "CH"
	}
	return u.posts.Add(ctx, &entities.PostChannel{
		BotKey:    botKey,
		ChannelID: channelID,
		Title:     title,
	})
}

// RemovePostChannel deletes one publish target
func (u *UseCase) RemovePostChannel(ctx context.Context, botKey string, channelID int64) error {
	return u.posts.Remove(ctx, botKey, channelID)
}

// ClearPostChannels deletes all publish targets of a bot
func (u *UseCase) ClearPostChannels(ctx context.Context, botKey string) error {
	return u.posts.Clear(ctx, botKey)
}

// PostChannels retrieves the bot's publish targets
func (u *UseCase) PostChannels(ctx context.Context, botKey string) ([]entities.PostChannel, error) {
	return u.posts.List(ctx, botKey)
}

// Publish posts the token's redemption link to every requested target. Each
// target is sent independently; failures are collected, never abort the
// remaining sends, and the upload session is closed once the attempt
// completes regardless of partial failure.
func (u *UseCase) Publish(ctx context.Context, sender deps.Sender, req *dto.PublishRequest) (*dto.PublishResult, error) {
	if len(req.Targets) == 0 {
		return nil, domainerrors.ErrNoPostTargets
	}

	session, err := u.uploads.Get(ctx, req.BotKey, req.Token)
	if err != nil {
		return nil, err
	}

	link := DeepLink(req.BotUsername, req.Token)
	caption := u.buildCaption(link)

	thumb := u.thumbs.CustomThumb(ctx)
	if thumb == "" {
		thumb = session.ThumbFileID
	}

	result := &dto.PublishResult{Total: len(req.Targets)}
	for _, target := range req.Targets {
		var sendErr error
		if thumb != "" {
			sendErr = sender.SendPhotoLink(ctx, target.ChannelID, thumb, caption, u.button, link)
		} else {
			sendErr = sender.SendTextLink(ctx, target.ChannelID, caption, u.button, link)
		}

		if sendErr != nil {
			u.logger.Warn().Err(sendErr).
				Str("bot_key", req.BotKey).
				Int64("channel_id", target.ChannelID).
				Msg("Publish to target failed")
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", target.Title, sendErr))
			continue
		}
		result.Succeeded++
	}

	if err := u.uploads.Delete(ctx, req.BotKey, req.Token); err != nil {
		u.logger.Error().Err(err).
			Str("bot_key", req.BotKey).
			Str("token", req.Token).
			Msg("Failed to close upload session after publish")
	}

	if err := u.events.SendPublishResult(ctx, req.BotKey, req.Token, result.Succeeded, result.Failures); err != nil {
		u.logger.Debug().Err(err).Msg("Publish audit event not delivered")
	}

	u.logger.Info().
		Str("bot_key", req.BotKey).
		Str("token", req.Token).
		Int("succeeded", result.Succeeded).
		Int("failed", len(result.Failures)).
		Msg("Publish attempt completed")

	return result, nil
}

// buildCaption renders the caption template and appends the redemption link
func (u *UseCase) buildCaption(link string) string {
	caption := strings.ReplaceAll(u.caption, "{date}", time.Now().Format("2006-01-02 15:04"))
	return caption + "\n\n🔗 <b>Link:</b>\n" + link
}
