// Package telegram contains Telegram Bot API infrastructure
package telegram

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

var slugRe = regexp.MustCompile(`^[A-Za-z0-9_]{5,}$`)

// Client wraps one bot's API surface. Every call is bounded by the configured
// timeout so an unresponsive chat cannot stall a gate check or a broadcast.
type Client struct {
	bot     *tgbot.Bot
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClient creates a client around an existing bot instance
func NewClient(b *tgbot.Bot, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		bot:     b,
		timeout: timeout,
		logger:  logger,
	}
}

// Raw returns the underlying bot for handler registration
func (c *Client) Raw() *tgbot.Bot {
	return c.bot
}

func (c *Client) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// Me fetches the bot's own identity and returns its username
func (c *Client) Me(ctx context.Context) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	me, err := c.bot.GetMe(ctx)
	if err != nil {
		return "", pkgerrors.NewUpstreamError("getMe failed", err)
	}

	username := strings.TrimPrefix(me.Username, "@")
	if username == "" {
		return "", pkgerrors.NewValidationError("bot has no username")
	}

	return username, nil
}

// CopyMessage copies a message between two chats and returns the new message ID
func (c *Client) CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) (int, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	copied, err := c.bot.CopyMessage(ctx, &tgbot.CopyMessageParams{
		ChatID:     toChatID,
		FromChatID: fromChatID,
		MessageID:  messageID,
	})
	if err != nil {
		return 0, pkgerrors.NewUpstreamError("copyMessage failed", err)
	}

	return copied.ID, nil
}

// IsMember reports whether the user holds an active membership in the channel.
// Left and banned statuses count as not joined.
func (c *Client) IsMember(ctx context.Context, channel string, userID int64) (bool, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	member, err := c.bot.GetChatMember(ctx, &tgbot.GetChatMemberParams{
		ChatID: chatID(channel),
		UserID: userID,
	})
	if err != nil {
		return false, pkgerrors.NewUpstreamError("getChatMember failed", err)
	}

	switch member.Type {
	case models.ChatMemberTypeLeft, models.ChatMemberTypeBanned:
		return false, nil
	}

	return true, nil
}

// CreateInviteLink requests a fresh invite link for the channel
func (c *Client) CreateInviteLink(ctx context.Context, channel string) (string, error) {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	inv, err := c.bot.CreateChatInviteLink(ctx, &tgbot.CreateChatInviteLinkParams{
		ChatID: chatID(channel),
		Name:   "FSUB auto link",
	})
	if err != nil {
		return "", pkgerrors.NewUpstreamError("createChatInviteLink failed", err)
	}

	return inv.InviteLink, nil
}

// SendText sends a plain text message
func (c *Client) SendText(ctx context.Context, to int64, text string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	_, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: to,
		Text:   text,
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("sendMessage failed", err)
	}
	return nil
}

// SendMarkup sends a text message with an inline keyboard
func (c *Client) SendMarkup(ctx context.Context, to int64, text string, kb models.ReplyMarkup) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	_, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      to,
		Text:        text,
		ReplyMarkup: kb,
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("sendMessage failed", err)
	}
	return nil
}

// SendTextLink sends an HTML caption with a single URL button
func (c *Client) SendTextLink(ctx context.Context, to int64, text, buttonText, buttonURL string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	disabled := true
	_, err := c.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:    to,
		Text:      text,
		ParseMode: models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: &disabled,
		},
		ReplyMarkup: urlKeyboard(buttonText, buttonURL),
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("sendMessage failed", err)
	}
	return nil
}

// SendPhotoLink sends a photo by file ID with an HTML caption and one URL button
func (c *Client) SendPhotoLink(ctx context.Context, to int64, photoFileID, caption, buttonText, buttonURL string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	_, err := c.bot.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:      to,
		Photo:       &models.InputFileString{Data: photoFileID},
		Caption:     caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: urlKeyboard(buttonText, buttonURL),
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("sendPhoto failed", err)
	}
	return nil
}

// SendPhoto sends a photo by file ID with a plain caption
func (c *Client) SendPhoto(ctx context.Context, to int64, photoFileID, caption string) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	_, err := c.bot.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:  to,
		Photo:   &models.InputFileString{Data: photoFileID},
		Caption: caption,
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("sendPhoto failed", err)
	}
	return nil
}

// EditText edits a message's text and keyboard
func (c *Client) EditText(ctx context.Context, chat int64, messageID int, text string, kb models.ReplyMarkup) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	params := &tgbot.EditMessageTextParams{
		ChatID:    chat,
		MessageID: messageID,
		Text:      text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	_, err := c.bot.EditMessageText(ctx, params)
	if err != nil {
		return pkgerrors.NewUpstreamError("editMessageText failed", err)
	}
	return nil
}

// EditMarkup replaces a message's inline keyboard
func (c *Client) EditMarkup(ctx context.Context, chat int64, messageID int, kb models.ReplyMarkup) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	_, err := c.bot.EditMessageReplyMarkup(ctx, &tgbot.EditMessageReplyMarkupParams{
		ChatID:      chat,
		MessageID:   messageID,
		ReplyMarkup: kb,
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("editMessageReplyMarkup failed", err)
	}
	return nil
}

// AnswerCallback acknowledges a callback query
func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	_, err := c.bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		return pkgerrors.NewUpstreamError("answerCallbackQuery failed", err)
	}
	return nil
}

// Close closes the bot's API session
func (c *Client) Close(ctx context.Context) error {
	ctx, cancel := c.bound(ctx)
	defer cancel()

	if _, err := c.bot.Close(ctx); err != nil {
		return pkgerrors.NewUpstreamError("close failed", err)
	}
	return nil
}

// urlKeyboard builds a one-button inline keyboard
func urlKeyboard(text, url string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: text, URL: url}},
		},
	}
}

// chatID converts a stored channel identifier into a Bot API chat reference.
// Numeric identifiers address private channels, everything else is a public
// handle.
func chatID(channel string) any {
	if strings.HasPrefix(channel, "-") {
		if id, err := strconv.ParseInt(channel, 10, 64); err == nil {
			return id
		}
	}
	if strings.HasPrefix(channel, "@") {
		return channel
	}
	if slugRe.MatchString(channel) {
		return "@" + channel
	}
	return channel
}
