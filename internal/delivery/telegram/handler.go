// Package telegram contains the per-worker update handlers
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	accessuc "github.com/iyann1255/fsubmul/internal/domain/access/usecase/buissines"
	fleetentities "github.com/iyann1255/fsubmul/internal/domain/fleet/entities"
	gateuc "github.com/iyann1255/fsubmul/internal/domain/gate/usecase/buissines"
	settingsuc "github.com/iyann1255/fsubmul/internal/domain/settings/usecase/buissines"
	"github.com/iyann1255/fsubmul/internal/domain/vault/dto"
	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
	vaultuc "github.com/iyann1255/fsubmul/internal/domain/vault/usecase/buissines"
	pkgerrors "github.com/iyann1255/fsubmul/pkg/errors"
)

// Manager is the supervisor surface the admin panel drives
type Manager interface {
	Register(ctx context.Context, token string, registrantID int64) (string, error)
	Stop(ctx context.Context, botKey string) error
	Remove(ctx context.Context, botKey string) error
	List(ctx context.Context) ([]fleetentities.BotStatus, error)
}

// platform is the per-worker API surface handlers drive. The infrastructure
// client implements it; its method set also covers the gate's Membership and
// InviteLinker and the vault's Sender.
type platform interface {
	CopyMessage(ctx context.Context, toChatID, fromChatID int64, messageID int) (int, error)
	IsMember(ctx context.Context, channel string, userID int64) (bool, error)
	CreateInviteLink(ctx context.Context, channel string) (string, error)
	SendText(ctx context.Context, to int64, text string) error
	SendMarkup(ctx context.Context, to int64, text string, kb models.ReplyMarkup) error
	SendTextLink(ctx context.Context, to int64, text, buttonText, buttonURL string) error
	SendPhotoLink(ctx context.Context, to int64, photoFileID, caption, buttonText, buttonURL string) error
	SendPhoto(ctx context.Context, to int64, photoFileID, caption string) error
	EditText(ctx context.Context, chat int64, messageID int, text string, kb models.ReplyMarkup) error
	EditMarkup(ctx context.Context, chat int64, messageID int, kb models.ReplyMarkup) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}

// Handler is one worker's update handler set, bound to its bot key. Handlers
// never return errors to the platform; failures are logged and answered with
// user-facing text.
type Handler struct {
	botKey    string
	username  string
	isRoot    bool
	archiveID int64

	client   platform
	manager  Manager
	vault    *vaultuc.UseCase
	gate     *gateuc.UseCase
	access   *accessuc.UseCase
	settings *settingsuc.UseCase
	logger   zerolog.Logger
}

// register binds the handler set onto the bot's dispatcher
func (h *Handler) register(b *tgbot.Bot) {
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, h.onStart)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/panel", tgbot.MatchTypeExact, h.onPanel)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/setthumb", tgbot.MatchTypeExact, h.onSetThumb)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/showthumb", tgbot.MatchTypeExact, h.onShowThumb)
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/delthumb", tgbot.MatchTypeExact, h.onDelThumb)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, h.onCallback)
}

// onStart serves /start with and without a token argument
func (h *Handler) onStart(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	args := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/start"))
	if args == "" {
		h.sendInfo(ctx, msg.Chat.ID, msg.From.ID)
		return
	}

	h.redeem(ctx, msg.Chat.ID, msg.From.ID, args)
}

// sendInfo replies to a bare /start with the bot's current state
func (h *Handler) sendInfo(ctx context.Context, chatID, userID int64) {
	required, err := h.gate.RequiredChannels(ctx, h.botKey)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load required channels for info")
	}

	text := fmt.Sprintf("🤖 @%s aktif.\n📢 Channel wajib join: %d", h.username, len(required))

	if h.access.CanManage(ctx, h.botKey, userID, h.isRoot) {
		targets, err := h.vault.PostChannels(ctx, h.botKey)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to load post channels for info")
		}
		text += fmt.Sprintf("\n📤 Channel post: %d", len(targets))
		if len(targets) == 0 {
			text += "\n\n⚠️ Belum ada channel post. Tambahkan lewat /panel sebelum upload."
		}
		text += "\n\nKirim video untuk membuat link, atau buka /panel."
	}

	if err := h.client.SendText(ctx, chatID, text); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to send info reply")
	}
}

// redeem resolves a token: unknown tokens are rejected, gated users get the
// join prompt, joined users get the archived content copied into the chat.
// The gate follows the token's embedded namespace, so a token minted by one
// tenant is checked against that tenant's required channels no matter which
// bot it arrives through.
func (h *Handler) redeem(ctx context.Context, chatID, userID int64, token string) {
	namespace := vaultuc.Namespace(h.botKey, token)

	item, err := h.vault.Content(ctx, namespace, token)
	if err != nil {
		if pkgerrors.IsNotFoundError(err) {
			h.reply(ctx, chatID, "❌ Token tidak valid atau sudah dihapus.")
			return
		}
		h.logger.Error().Err(err).Str("token", token).Msg("Failed to resolve token")
		h.reply(ctx, chatID, "❌ Terjadi kesalahan, coba lagi nanti.")
		return
	}

	if !h.gate.IsJoinedAll(ctx, h.client, namespace, userID) {
		h.sendGatePrompt(ctx, chatID, userID, token)
		return
	}

	if _, err := h.client.CopyMessage(ctx, chatID, h.archiveID, item.ArchiveMessageID); err != nil {
		h.logger.Error().Err(err).Str("token", token).Msg("Failed to deliver content")
		h.reply(ctx, chatID, "❌ Gagal mengirim video, coba lagi nanti.")
	}
}

// sendGatePrompt sends the join requirement with the current button window
func (h *Handler) sendGatePrompt(ctx context.Context, chatID, userID int64, token string) {
	kb, err := h.buildJoinKeyboard(ctx, userID, token)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build join keyboard")
		h.reply(ctx, chatID, "❌ Terjadi kesalahan, coba lagi nanti.")
		return
	}

	text := "🔒 Kamu harus join channel di bawah dulu, lalu tekan 🔄 Coba Lagi."
	if err := h.client.SendMarkup(ctx, chatID, text, kb); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to send gate prompt")
	}
}

// buildJoinKeyboard resolves the current display window into join buttons,
// under the token's namespace
func (h *Handler) buildJoinKeyboard(ctx context.Context, userID int64, token string) (*models.InlineKeyboardMarkup, error) {
	namespace := vaultuc.Namespace(h.botKey, token)

	required, err := h.gate.RequiredChannels(ctx, namespace)
	if err != nil {
		return nil, err
	}

	subset, err := h.gate.DisplaySubset(ctx, namespace, token, userID)
	if err != nil {
		return nil, err
	}

	buttons := make([]joinButton, 0, len(subset))
	for _, channel := range subset {
		buttons = append(buttons, joinButton{
			Channel: channel,
			URL:     h.gate.ResolveJoinLink(ctx, h.client, namespace, channel),
		})
	}

	return joinKeyboard(buttons, token, len(required) > len(subset)), nil
}

// onPanel opens the admin panel for managers
func (h *Handler) onPanel(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	text := "⚙️ Panel Admin @" + h.username
	if err := h.client.SendMarkup(ctx, msg.Chat.ID, text, panelKeyboard(h.isRoot)); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to send admin panel")
	}
}

// onSetThumb stores the global thumbnail from a replied-to photo
func (h *Handler) onSetThumb(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	reply := msg.ReplyToMessage
	if reply == nil || len(reply.Photo) == 0 {
		h.reply(ctx, msg.Chat.ID, "Balas sebuah foto dengan /setthumb, atau kirim foto dengan caption /setthumb.")
		return
	}

	fileID := reply.Photo[len(reply.Photo)-1].FileID
	if err := h.settings.SetCustomThumb(ctx, fileID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store custom thumbnail")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal menyimpan thumbnail.")
		return
	}
	h.reply(ctx, msg.Chat.ID, "✅ Thumbnail tersimpan.")
}

// onShowThumb previews the stored global thumbnail
func (h *Handler) onShowThumb(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	thumb := h.settings.CustomThumb(ctx)
	if thumb == "" {
		h.reply(ctx, msg.Chat.ID, "Belum ada thumbnail tersimpan.")
		return
	}

	if err := h.client.SendPhoto(ctx, msg.Chat.ID, thumb, "Thumbnail saat ini"); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to send thumbnail preview")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal menampilkan thumbnail.")
	}
}

// onDelThumb removes the stored global thumbnail
func (h *Handler) onDelThumb(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	if err := h.settings.DeleteCustomThumb(ctx); err != nil {
		h.logger.Error().Err(err).Msg("Failed to delete custom thumbnail")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal menghapus thumbnail.")
		return
	}
	h.reply(ctx, msg.Chat.ID, "✅ Thumbnail dihapus.")
}

// onDefault catches everything without a registered route: video uploads,
// thumbnail photos and pending admin text input. Group chatter is ignored.
func (h *Handler) onDefault(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if msg.Chat.Type != "private" {
		return
	}

	switch {
	case msg.Video != nil:
		h.onVideo(ctx, msg)
	case len(msg.Photo) > 0 && strings.TrimSpace(msg.Caption) == "/setthumb":
		h.onThumbPhoto(ctx, msg)
	case msg.Text != "":
		h.consumePending(ctx, msg)
	}
}

// onThumbPhoto stores the global thumbnail from a captioned photo
func (h *Handler) onThumbPhoto(ctx context.Context, msg *models.Message) {
	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	fileID := msg.Photo[len(msg.Photo)-1].FileID
	if err := h.settings.SetCustomThumb(ctx, fileID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store custom thumbnail")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal menyimpan thumbnail.")
		return
	}
	h.reply(ctx, msg.Chat.ID, "✅ Thumbnail tersimpan.")
}

// onVideo ingests an uploaded video: mint a token, archive the message, open
// the upload session and offer target selection
func (h *Handler) onVideo(ctx context.Context, msg *models.Message) {
	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	targets, err := h.vault.PostChannels(ctx, h.botKey)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load post channels")
		h.reply(ctx, msg.Chat.ID, "❌ Terjadi kesalahan, coba lagi nanti.")
		return
	}
	if len(targets) == 0 {
		h.reply(ctx, msg.Chat.ID, "⚠️ Belum ada channel post. Tambahkan lewat /panel dulu.")
		return
	}

	token := vaultuc.Mint(h.botKey)

	archiveMsgID, err := h.client.CopyMessage(ctx, h.archiveID, msg.Chat.ID, msg.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to archive uploaded video")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal menyimpan video ke arsip.")
		return
	}

	if err := h.vault.SaveContent(ctx, h.botKey, token, archiveMsgID); err != nil {
		h.logger.Error().Err(err).Str("token", token).Msg("Failed to save content reference")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal menyimpan video.")
		return
	}

	var thumb string
	if msg.Video.Thumbnail != nil {
		thumb = msg.Video.Thumbnail.FileID
	}
	if err := h.vault.OpenUpload(ctx, h.botKey, token, msg.From.ID, thumb); err != nil {
		h.logger.Error().Err(err).Str("token", token).Msg("Failed to open upload session")
		h.reply(ctx, msg.Chat.ID, "❌ Gagal membuka sesi upload.")
		return
	}

	text := "✅ Video tersimpan.\n\n🔗 " + vaultuc.DeepLink(h.username, token) + "\n\nPilih channel tujuan:"
	if err := h.client.SendMarkup(ctx, msg.Chat.ID, text, targetKeyboard(targets, token)); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to send target selection")
	}
}

// consumePending applies a manager's text input to their stored pending action
func (h *Handler) consumePending(ctx context.Context, msg *models.Message) {
	pending, err := h.settings.Pending(ctx, h.botKey, msg.From.ID)
	if err != nil {
		if !pkgerrors.IsNotFoundError(err) {
			h.logger.Error().Err(err).Msg("Failed to read pending action")
		}
		return
	}

	if err := h.settings.ClearPending(ctx, h.botKey, msg.From.ID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to clear pending action")
	}

	if !h.access.CanManage(ctx, h.botKey, msg.From.ID, h.isRoot) {
		return
	}

	input := strings.TrimSpace(msg.Text)
	chatID := msg.Chat.ID

	switch AdminAction(pending.Action) {
	case AdminBotAdd:
		if h.manager == nil {
			h.reply(ctx, chatID, "❌ Manajemen bot tidak tersedia.")
			return
		}
		key, err := h.manager.Register(ctx, input, msg.From.ID)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Bot registration failed")
			h.reply(ctx, chatID, "❌ Token ditolak atau bot gagal dijalankan.")
			return
		}
		h.reply(ctx, chatID, "✅ Bot @"+key+" terdaftar dan aktif.")

	case AdminBotStop:
		if h.manager == nil {
			h.reply(ctx, chatID, "❌ Manajemen bot tidak tersedia.")
			return
		}
		key := strings.TrimPrefix(input, "@")
		if err := h.manager.Stop(ctx, key); err != nil {
			h.reply(ctx, chatID, "❌ Bot @"+key+" tidak ditemukan.")
			return
		}
		h.reply(ctx, chatID, "✅ Bot @"+key+" dihentikan.")

	case AdminBotRemove:
		if h.manager == nil {
			h.reply(ctx, chatID, "❌ Manajemen bot tidak tersedia.")
			return
		}
		key := strings.TrimPrefix(input, "@")
		if err := h.manager.Remove(ctx, key); err != nil {
			h.reply(ctx, chatID, "❌ Bot @"+key+" tidak ditemukan.")
			return
		}
		h.reply(ctx, chatID, "✅ Bot @"+key+" dihapus beserta datanya.")

	case AdminFsubAdd:
		normalized, err := h.gate.AddChannel(ctx, h.botKey, input)
		if err != nil {
			h.reply(ctx, chatID, "❌ Format channel tidak valid. Gunakan @username, ID -100…, atau slug publik.")
			return
		}
		h.reply(ctx, chatID, "✅ Channel "+normalized+" ditambahkan ke wajib join.")

	case AdminFsubShowN:
		n, convErr := strconv.Atoi(input)
		if convErr != nil {
			h.reply(ctx, chatID, "❌ Kirim angka antara 1 dan 20.")
			return
		}
		if err := h.settings.SetShowCount(ctx, h.botKey, n); err != nil {
			h.reply(ctx, chatID, "❌ Kirim angka antara 1 dan 20.")
			return
		}
		h.reply(ctx, chatID, fmt.Sprintf("✅ Jumlah tombol join diatur ke %d.", n))

	case AdminPostAdd:
		idPart, title, _ := strings.Cut(input, " ")
		channelID, convErr := strconv.ParseInt(idPart, 10, 64)
		if convErr != nil {
			h.reply(ctx, chatID, "❌ Format salah. Kirim: <channel_id> <judul>.")
			return
		}
		if err := h.vault.AddPostChannel(ctx, h.botKey, channelID, strings.TrimSpace(title)); err != nil {
			h.logger.Error().Err(err).Msg("Failed to add post channel")
			h.reply(ctx, chatID, "❌ Gagal menambahkan channel post.")
			return
		}
		h.reply(ctx, chatID, "✅ Channel post ditambahkan.")

	default:
		h.logger.Warn().Str("action", pending.Action).Msg("Unknown pending action")
	}
}

// onCallback decodes and dispatches every callback query
func (h *Handler) onCallback(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	cmd, err := DecodeCallback(cq.Data)
	if err != nil {
		h.logger.Debug().Err(err).Str("data", cq.Data).Msg("Ignoring malformed callback")
		h.answer(ctx, cq.ID, "", false)
		return
	}

	var chatID int64
	var messageID int
	if cq.Message.Message != nil {
		chatID = cq.Message.Message.Chat.ID
		messageID = cq.Message.Message.ID
	}
	userID := cq.From.ID

	switch cmd.Kind {
	case KindCheck:
		h.onCheck(ctx, cq.ID, chatID, messageID, userID, cmd.Token)

	case KindRotate:
		h.onRotate(ctx, cq.ID, chatID, messageID, userID, cmd.Token)

	case KindPublish:
		h.onPublish(ctx, cq.ID, chatID, messageID, userID, cmd.Token, cmd.Target, false)

	case KindPublishAll:
		h.onPublish(ctx, cq.ID, chatID, messageID, userID, cmd.Token, 0, true)

	case KindCancelUpload:
		h.onCancelUpload(ctx, cq.ID, chatID, messageID, userID, cmd.Token)

	case KindAdmin:
		if !h.access.CanManage(ctx, h.botKey, userID, h.isRoot) {
			h.answer(ctx, cq.ID, "⛔ Tidak diizinkan", true)
			return
		}
		h.onAdmin(ctx, cq.ID, chatID, messageID, userID, cmd.Admin)
	}
}

// onCheck re-evaluates the gate: joined users get the content, everyone else
// gets a rotated window so repeat attempts surface different channels. Like
// redeem, the check runs under the token's namespace.
func (h *Handler) onCheck(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, token string) {
	namespace := vaultuc.Namespace(h.botKey, token)

	if h.gate.IsJoinedAll(ctx, h.client, namespace, userID) {
		h.answer(ctx, callbackID, "✅ Terima kasih sudah join!", false)
		h.redeem(ctx, chatID, userID, token)
		return
	}

	if _, err := h.gate.Rotate(ctx, namespace, token, userID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to rotate join window")
	}
	h.refreshJoinKeyboard(ctx, chatID, messageID, userID, token)
	h.answer(ctx, callbackID, "❌ Kamu belum join semua channel", true)
}

// onRotate advances the join-button window on explicit request
func (h *Handler) onRotate(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, token string) {
	if _, err := h.gate.Rotate(ctx, vaultuc.Namespace(h.botKey, token), token, userID); err != nil {
		h.logger.Error().Err(err).Msg("Failed to rotate join window")
		h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
		return
	}
	h.refreshJoinKeyboard(ctx, chatID, messageID, userID, token)
	h.answer(ctx, callbackID, "", false)
}

// refreshJoinKeyboard re-renders the join prompt in place
func (h *Handler) refreshJoinKeyboard(ctx context.Context, chatID int64, messageID int, userID int64, token string) {
	kb, err := h.buildJoinKeyboard(ctx, userID, token)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to rebuild join keyboard")
		return
	}
	if err := h.client.EditMarkup(ctx, chatID, messageID, kb); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to edit join keyboard")
	}
}

// authorizeUpload resolves the session and checks the caller may act on it:
// the uploader always can, managers can
func (h *Handler) authorizeUpload(ctx context.Context, callbackID string, userID int64, token string) (*entities.UploadSession, bool) {
	session, err := h.vault.Upload(ctx, h.botKey, token)
	if err != nil {
		h.answer(ctx, callbackID, "❌ Sesi upload sudah tidak ada", true)
		return nil, false
	}

	if session.UploaderID != userID && !h.access.CanManage(ctx, h.botKey, userID, h.isRoot) {
		h.answer(ctx, callbackID, "⛔ Tidak diizinkan", true)
		return nil, false
	}

	return session, true
}

// onPublish broadcasts a pending upload to one target or to all of them. The
// single-target index addresses the current post-channel list; a stale index
// from an old keyboard is rejected.
func (h *Handler) onPublish(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, token string, target int, all bool) {
	if _, ok := h.authorizeUpload(ctx, callbackID, userID, token); !ok {
		return
	}

	targets, err := h.vault.PostChannels(ctx, h.botKey)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to load post channels")
		h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
		return
	}

	if !all {
		if target < 0 || target >= len(targets) {
			h.answer(ctx, callbackID, "❌ Channel tujuan sudah tidak ada", true)
			return
		}
		targets = targets[target : target+1]
	}

	result, err := h.vault.Publish(ctx, h.client, &dto.PublishRequest{
		BotKey:      h.botKey,
		BotUsername: h.username,
		Token:       token,
		Targets:     targets,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("token", token).Msg("Publish failed")
		h.answer(ctx, callbackID, "❌ Gagal memposting", true)
		return
	}

	summary := fmt.Sprintf("✅ Terkirim ke %d/%d channel.", result.Succeeded, result.Total)
	if len(result.Failures) > 0 {
		summary += "\n\nGagal:\n• " + strings.Join(result.Failures, "\n• ")
	}

	if err := h.client.EditText(ctx, chatID, messageID, summary, nil); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to edit publish summary")
	}
	h.answer(ctx, callbackID, "", false)
}

// onCancelUpload discards a pending upload session
func (h *Handler) onCancelUpload(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, token string) {
	if _, ok := h.authorizeUpload(ctx, callbackID, userID, token); !ok {
		return
	}

	if err := h.vault.CloseUpload(ctx, h.botKey, token); err != nil {
		h.logger.Error().Err(err).Str("token", token).Msg("Failed to cancel upload")
		h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
		return
	}

	if err := h.client.EditText(ctx, chatID, messageID, "❌ Upload dibatalkan.", nil); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to edit cancel notice")
	}
	h.answer(ctx, callbackID, "", false)
}

// onAdmin dispatches panel navigation and actions for an authorized manager
func (h *Handler) onAdmin(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, action AdminAction) {
	switch action {
	case AdminPanel:
		h.edit(ctx, chatID, messageID, "⚙️ Panel Admin @"+h.username, panelKeyboard(h.isRoot))

	case AdminClose:
		h.edit(ctx, chatID, messageID, "Panel ditutup.", nil)

	case AdminBots, AdminBotList, AdminBotAdd, AdminBotStop, AdminBotRemove:
		if !h.isRoot {
			h.answer(ctx, callbackID, "⛔ Hanya tersedia di bot utama", true)
			return
		}
		h.onAdminBots(ctx, callbackID, chatID, messageID, userID, action)
		return

	case AdminFsub:
		h.edit(ctx, chatID, messageID, "📢 Channel Wajib Join", fsubKeyboard())

	case AdminFsubList:
		channels, err := h.gate.RequiredChannels(ctx, h.botKey)
		if err != nil {
			h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
			return
		}
		h.edit(ctx, chatID, messageID, listText("📢 Channel wajib join:", channels), fsubKeyboard())

	case AdminFsubAdd:
		h.setPending(ctx, callbackID, chatID, messageID, userID, action,
			"Kirim channel yang wajib di-join: @username, ID -100…, atau slug publik.")

	case AdminFsubShowN:
		h.setPending(ctx, callbackID, chatID, messageID, userID, action,
			"Kirim jumlah tombol join yang ditampilkan (1-20).")

	case AdminFsubClear:
		if err := h.gate.ClearChannels(ctx, h.botKey); err != nil {
			h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
			return
		}
		h.edit(ctx, chatID, messageID, "✅ Semua channel wajib join dihapus.", fsubKeyboard())

	case AdminPosts:
		h.edit(ctx, chatID, messageID, "📤 Channel Post", postsKeyboard())

	case AdminPostList:
		targets, err := h.vault.PostChannels(ctx, h.botKey)
		if err != nil {
			h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
			return
		}
		lines := make([]string, 0, len(targets))
		for _, target := range targets {
			lines = append(lines, fmt.Sprintf("%s (%d)", target.Title, target.ChannelID))
		}
		h.edit(ctx, chatID, messageID, listText("📤 Channel post:", lines), postsKeyboard())

	case AdminPostAdd:
		h.setPending(ctx, callbackID, chatID, messageID, userID, action,
			"Kirim channel post dengan format: <channel_id> <judul>.")

	case AdminPostClear:
		if err := h.vault.ClearPostChannels(ctx, h.botKey); err != nil {
			h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
			return
		}
		h.edit(ctx, chatID, messageID, "✅ Semua channel post dihapus.", postsKeyboard())
	}

	h.answer(ctx, callbackID, "", false)
}

// onAdminBots serves the root-only fleet submenu
func (h *Handler) onAdminBots(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, action AdminAction) {
	switch action {
	case AdminBots:
		h.edit(ctx, chatID, messageID, "🤖 Kelola Bot", botsKeyboard())

	case AdminBotList:
		if h.manager == nil {
			h.answer(ctx, callbackID, "❌ Manajemen bot tidak tersedia", true)
			return
		}
		statuses, err := h.manager.List(ctx)
		if err != nil {
			h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
			return
		}
		lines := make([]string, 0, len(statuses))
		for _, status := range statuses {
			state := "⏸ berhenti"
			if status.Running {
				state = "▶️ aktif"
			}
			lines = append(lines, "@"+status.Username+" — "+state)
		}
		h.edit(ctx, chatID, messageID, listText("🤖 Bot terdaftar:", lines), botsKeyboard())

	case AdminBotAdd:
		h.setPending(ctx, callbackID, chatID, messageID, userID, action,
			"Kirim token bot baru dari @BotFather.")

	case AdminBotStop:
		h.setPending(ctx, callbackID, chatID, messageID, userID, action,
			"Kirim username bot yang akan dihentikan.")

	case AdminBotRemove:
		h.setPending(ctx, callbackID, chatID, messageID, userID, action,
			"Kirim username bot yang akan dihapus beserta datanya.")
	}

	h.answer(ctx, callbackID, "", false)
}

// setPending stores the admin's input mode and prompts for the value
func (h *Handler) setPending(ctx context.Context, callbackID string, chatID int64, messageID int, userID int64, action AdminAction, prompt string) {
	if err := h.settings.SetPending(ctx, h.botKey, userID, string(action), ""); err != nil {
		h.logger.Error().Err(err).Str("action", string(action)).Msg("Failed to store pending action")
		h.answer(ctx, callbackID, "❌ Terjadi kesalahan", true)
		return
	}
	h.edit(ctx, chatID, messageID, prompt, nil)
}

// reply sends plain text, logging delivery failure only
func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.client.SendText(ctx, chatID, text); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to send reply")
	}
}

// edit rewrites a panel message in place, logging failure only
func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, text string, kb models.ReplyMarkup) {
	if err := h.client.EditText(ctx, chatID, messageID, text, kb); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to edit message")
	}
}

// answer acknowledges a callback, logging failure only
func (h *Handler) answer(ctx context.Context, callbackID, text string, alert bool) {
	if err := h.client.AnswerCallback(ctx, callbackID, text, alert); err != nil {
		h.logger.Debug().Err(err).Msg("Failed to answer callback")
	}
}

// listText renders a titled bullet list, with a placeholder when empty
func listText(title string, lines []string) string {
	if len(lines) == 0 {
		return title + "\n(kosong)"
	}
	return title + "\n• " + strings.Join(lines, "\n• ")
}
