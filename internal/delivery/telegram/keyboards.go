package telegram

import (
	"strconv"

	"github.com/go-telegram/bot/models"

	"github.com/iyann1255/fsubmul/internal/domain/vault/entities"
)

// joinButton is one required channel resolved to a clickable link. URL is
// empty when no link could be produced; such channels get no button.
type joinButton struct {
	Channel string
	URL     string
}

// joinKeyboard lays out the gate prompt: one URL button per resolvable
// channel, then the rotate and re-check controls
func joinKeyboard(buttons []joinButton, token string, showMore bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton

	for i, btn := range buttons {
		if btn.URL == "" {
			continue
		}
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: joinButtonLabel(i), URL: btn.URL},
		})
	}

	var controls []models.InlineKeyboardButton
	if showMore {
		controls = append(controls, models.InlineKeyboardButton{
			Text:         "📋 Channel Lainnya",
			CallbackData: RotateData(token),
		})
	}
	controls = append(controls, models.InlineKeyboardButton{
		Text:         "🔄 Coba Lagi",
		CallbackData: CheckData(token),
	})
	rows = append(rows, controls)

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func joinButtonLabel(i int) string {
	return "📢 Join Channel " + strconv.Itoa(i+1)
}

// targetKeyboard lays out publish target selection for a pending upload
func targetKeyboard(targets []entities.PostChannel, token string) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton

	for i, target := range targets {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "📤 " + target.Title, CallbackData: PublishData(token, i)},
		})
	}

	rows = append(rows,
		[]models.InlineKeyboardButton{
			{Text: "📢 Post ke Semua", CallbackData: PublishAllData(token)},
		},
		[]models.InlineKeyboardButton{
			{Text: "❌ Batal", CallbackData: CancelData(token)},
		},
	)

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// panelKeyboard is the admin panel's top level. Bot fleet management only
// appears on the root identity.
func panelKeyboard(isRoot bool) *models.InlineKeyboardMarkup {
	var rows [][]models.InlineKeyboardButton

	if isRoot {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "🤖 Kelola Bot", CallbackData: AdminData(AdminBots)},
		})
	}

	rows = append(rows,
		[]models.InlineKeyboardButton{
			{Text: "📢 Channel Wajib Join", CallbackData: AdminData(AdminFsub)},
		},
		[]models.InlineKeyboardButton{
			{Text: "📤 Channel Post", CallbackData: AdminData(AdminPosts)},
		},
		[]models.InlineKeyboardButton{
			{Text: "❌ Tutup", CallbackData: AdminData(AdminClose)},
		},
	)

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// botsKeyboard is the fleet management submenu
func botsKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📋 Daftar Bot", CallbackData: AdminData(AdminBotList)}},
			{{Text: "➕ Tambah Bot", CallbackData: AdminData(AdminBotAdd)}},
			{{Text: "⏸ Stop Bot", CallbackData: AdminData(AdminBotStop)}},
			{{Text: "🗑 Hapus Bot", CallbackData: AdminData(AdminBotRemove)}},
			{{Text: "⬅️ Kembali", CallbackData: AdminData(AdminPanel)}},
		},
	}
}

// fsubKeyboard is the required-channel submenu
func fsubKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📋 Daftar Channel", CallbackData: AdminData(AdminFsubList)}},
			{{Text: "➕ Tambah Channel", CallbackData: AdminData(AdminFsubAdd)}},
			{{Text: "🔢 Jumlah Tombol", CallbackData: AdminData(AdminFsubShowN)}},
			{{Text: "🗑 Hapus Semua", CallbackData: AdminData(AdminFsubClear)}},
			{{Text: "⬅️ Kembali", CallbackData: AdminData(AdminPanel)}},
		},
	}
}

// postsKeyboard is the publish-target submenu
func postsKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📋 Daftar Channel", CallbackData: AdminData(AdminPostList)}},
			{{Text: "➕ Tambah Channel", CallbackData: AdminData(AdminPostAdd)}},
			{{Text: "🗑 Hapus Semua", CallbackData: AdminData(AdminPostClear)}},
			{{Text: "⬅️ Kembali", CallbackData: AdminData(AdminPanel)}},
		},
	}
}
