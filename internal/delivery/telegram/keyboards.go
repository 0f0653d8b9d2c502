package telegram

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// Callback action tags. Positional parameters are appended with "_".
const (
	actionDownload     = "download_"
	actionCheck        = "check_"
	actionAddBot       = "add_bot"
	actionListBots     = "list_bots"
	actionBotDetail    = "bot_"
	actionAddChannel   = "add_channel_"
	actionListChannels = "list_channels_"
	actionChannel      = "channel_"
	actionDelChannel   = "del_channel_"
	actionDelBot       = "del_bot_"
	actionCancel       = "cancel"
	actionMainMenu     = "main_menu"
	actionBotsMenu     = "bots_menu"
)

// adminMainMenu is the persistent reply keyboard of the admin bot
func adminMainMenu() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: menuBots}, {Text: menuChannels}},
			{{Text: menuStats}, {Text: menuHelp}},
		},
		ResizeKeyboard: true,
	}
}

// botManagementMenu offers bot onboarding and listing
func botManagementMenu() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "➕ Add bot", CallbackData: actionAddBot}},
			{{Text: "📋 List bots", CallbackData: actionListBots}},
		},
	}
}

// botsList renders one button per registered bot
func botsList(bots []domain.BotIdentity) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(bots)+1)
	for _, b := range bots {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("🤖 %s", b.Name),
			CallbackData: fmt.Sprintf("%s%d", actionBotDetail, b.ID),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         "⬅️ Back",
		CallbackData: actionBotsMenu,
	}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// channelManagementMenu offers channel onboarding and listing for one bot
func channelManagementMenu(botID uint) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "➕ Add channel", CallbackData: fmt.Sprintf("%s%d", actionAddChannel, botID)}},
			{{Text: "📋 List channels", CallbackData: fmt.Sprintf("%s%d", actionListChannels, botID)}},
			{{Text: "🗑 Delete bot", CallbackData: fmt.Sprintf("%s%d", actionDelBot, botID)}},
			{{Text: "⬅️ Back", CallbackData: actionListBots}},
		},
	}
}

// channelsList renders one button per gating channel of a bot
func channelsList(channels []domain.Channel, botID uint) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(channels)+1)
	for _, ch := range channels {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("%s %s", channelIcon(ch.Type), ch.Title),
			CallbackData: fmt.Sprintf("%s%d", actionChannel, ch.ID),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         "⬅️ Back",
		CallbackData: fmt.Sprintf("%s%d", actionBotDetail, botID),
	}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// channelActions offers deletion and navigation for one channel
func channelActions(channelID, botID uint) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🗑 Delete channel", CallbackData: fmt.Sprintf("%s%d", actionDelChannel, channelID)}},
			{{Text: "⬅️ Back", CallbackData: fmt.Sprintf("%s%d", actionListChannels, botID)}},
		},
	}
}

// cancelButton aborts an in-flight registration conversation
func cancelButton() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "❌ Cancel", CallbackData: actionCancel}},
		},
	}
}

// unmetChannelButtons renders a join button per unmet channel and a
// re-check button that carries the artifact id, so the check can resume
// the delivery directly
func unmetChannelButtons(unmet []domain.Channel, artifactID uint) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(unmet)+1)
	for _, ch := range unmet {
		if url := channelURL(&ch); url != "" {
			rows = append(rows, []models.InlineKeyboardButton{{
				Text: fmt.Sprintf("%s %s", channelIcon(ch.Type), ch.Title),
				URL:  url,
			}})
		}
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         "✅ Check subscription",
		CallbackData: fmt.Sprintf("%s%d", actionCheck, artifactID),
	}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// channelURL returns the join link for a channel, if one is known
func channelURL(ch *domain.Channel) string {
	if ch.Username != nil && *ch.Username != "" {
		return "https://t.me/" + *ch.Username
	}
	if ch.InviteLink != nil {
		return *ch.InviteLink
	}
	return ""
}

// channelIcon returns the visibility icon of a channel
func channelIcon(t domain.ChannelType) string {
	if t == domain.ChannelTypePrivate {
		return "🔒"
	}
	return "📢"
}
