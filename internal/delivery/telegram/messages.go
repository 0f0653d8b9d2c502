package telegram

import (
	"fmt"
	"strings"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// Admin menu button labels. These double as exact-match routes.
const (
	menuBots     = "🤖 Bots"
	menuChannels = "📢 Channels"
	menuStats    = "📊 Statistics"
	menuHelp     = "ℹ️ Help"
)

const (
	msgAdminWelcome = "👋 Welcome to the admin panel!\n\nUse the menu below to manage bots and gating channels."
	msgNotOperator  = "⛔️ You are not allowed to use this bot."

	msgHelp = "ℹ️ Help\n\n" +
		"🤖 Bots: onboard delivery bots and manage their gating channels.\n" +
		"📢 Channels: pick a bot first, then add the channels a user must join.\n" +
		"📊 Statistics: subscribers, downloads and per-bot totals.\n\n" +
		"To publish a file, send the media to the delivery bot itself."

	msgAskToken = "🔑 Send me the bot token from @BotFather."
	msgAskName  = "✍️ Token accepted. Now send a display name for the bot (at least 2 characters)."
	msgAskChannel = "📢 Forward a message from the channel, or send its @username or id.\n\n" +
		"The bot must already be an administrator of the channel."

	msgUserWelcome = "👋 Welcome!\n\nSubscribe to the channels below and you will be able to download files."
	msgFileCaption = "✅ Here is your file!"
	msgNotFound    = "❌ File not found."
	msgSendFailed  = "❌ Failed to send the file, try again later."
	msgGatedHeader = "🔐 To download the file, join these channels first:"
)

// gatedText renders the list of unmet channels for a gated delivery
func gatedText(unmet []domain.Channel) string {
	var b strings.Builder
	b.WriteString(msgGatedHeader)
	b.WriteString("\n\n")
	for _, ch := range unmet {
		fmt.Fprintf(&b, "%s %s\n", channelIcon(ch.Type), ch.Title)
	}
	b.WriteString("\n⚠️ For private channels a pending join request is enough.")
	return b.String()
}

// statsText renders the aggregate statistics report
func statsText(s *domain.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Statistics\n\n👥 Subscribers: %d\n📥 Downloads: %d\n🤖 Bots: %d\n", s.TotalUsers, s.TotalDownloads, len(s.Bots))
	for _, bot := range s.Bots {
		fmt.Fprintf(&b, "\n🤖 %s\n  📢 Channels: %d\n  📁 Files: %d\n", bot.Bot.Name, bot.Channels, bot.Files)
	}
	return b.String()
}

// channelText renders the detail card of one gating channel
func channelText(ch *domain.Channel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\nType: %s\nID: %s\n", channelIcon(ch.Type), ch.Title, ch.Type, ch.ChannelID)
	if ch.Username != nil && *ch.Username != "" {
		fmt.Fprintf(&b, "Username: @%s\n", *ch.Username)
	}
	if ch.InviteLink != nil && *ch.InviteLink != "" {
		fmt.Fprintf(&b, "Invite link: %s\n", *ch.InviteLink)
	}
	return b.String()
}
