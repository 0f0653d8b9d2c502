package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/config"
	"github.com/Conte777/MediaFlow/internal/domain"
	infratg "github.com/Conte777/MediaFlow/internal/infrastructure/telegram"
	"github.com/Conte777/MediaFlow/internal/usecase"
)

// AdminHandlers serves the operator bot: bot onboarding, channel
// management and statistics. Every route is gated on the operator
// allowlist.
type AdminHandlers struct {
	registration *usecase.RegistrationUseCase
	stats        *usecase.StatsUseCase
	bots         domain.BotRepository
	channels     domain.ChannelRepository
	fleet        *infratg.Fleet
	cfg          *config.TelegramConfig
	logger       zerolog.Logger
}

func NewAdminHandlers(
	registration *usecase.RegistrationUseCase,
	stats *usecase.StatsUseCase,
	bots domain.BotRepository,
	channels domain.ChannelRepository,
	fleet *infratg.Fleet,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) *AdminHandlers {
	return &AdminHandlers{
		registration: registration,
		stats:        stats,
		bots:         bots,
		channels:     channels,
		fleet:        fleet,
		cfg:          cfg,
		logger:       logger.With().Str("component", "admin_handlers").Logger(),
	}
}

// Register wires all admin routes. Handler match order is not
// guaranteed, so the free-text route excludes commands and menu
// buttons itself.
func (h *AdminHandlers) Register(b *tgbot.Bot) {
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.guardMsg(h.handleStart))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, menuBots, tgbot.MatchTypeExact, h.guardMsg(h.handleBotsMenu))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, menuChannels, tgbot.MatchTypeExact, h.guardMsg(h.handleListBots))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, menuStats, tgbot.MatchTypeExact, h.guardMsg(h.handleStats))
	b.RegisterHandler(tgbot.HandlerTypeMessageText, menuHelp, tgbot.MatchTypeExact, h.guardMsg(h.handleHelp))

	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionAddBot, tgbot.MatchTypeExact, h.guardCallback(h.handleAddBot))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionListBots, tgbot.MatchTypeExact, h.guardCallback(h.handleListBotsCallback))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionBotsMenu, tgbot.MatchTypeExact, h.guardCallback(h.handleBotsMenuCallback))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionMainMenu, tgbot.MatchTypeExact, h.guardCallback(h.handleMainMenu))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionCancel, tgbot.MatchTypeExact, h.guardCallback(h.handleCancel))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionAddChannel, tgbot.MatchTypePrefix, h.guardCallback(h.handleAddChannel))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionListChannels, tgbot.MatchTypePrefix, h.guardCallback(h.handleListChannels))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionDelChannel, tgbot.MatchTypePrefix, h.guardCallback(h.handleDelChannel))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionDelBot, tgbot.MatchTypePrefix, h.guardCallback(h.handleDelBot))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionChannel, tgbot.MatchTypePrefix, h.guardCallback(h.handleChannelDetail))
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionBotDetail, tgbot.MatchTypePrefix, h.guardCallback(h.handleBotDetail))

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && update.Message.Text != "" &&
			!strings.HasPrefix(update.Message.Text, "/") &&
			!isMenuButton(update.Message.Text)
	}, h.guardMsg(h.handleText))
}

func isMenuButton(text string) bool {
	switch text {
	case menuBots, menuChannels, menuStats, menuHelp:
		return true
	}
	return false
}

type msgHandler func(ctx context.Context, bot *tgbot.Bot, msg *models.Message)
type callbackHandler func(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery)

// guardMsg rejects messages from anyone outside the operator allowlist
func (h *AdminHandlers) guardMsg(next msgHandler) tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		msg := update.Message
		if msg == nil || msg.From == nil {
			return
		}
		if !h.cfg.IsAdmin(msg.From.ID) {
			h.logger.Warn().Int64("user_id", msg.From.ID).Msg("Admin access denied")
			h.sendMessage(ctx, bot, msg.Chat.ID, msgNotOperator, nil)
			return
		}
		next(ctx, bot, msg)
	}
}

// guardCallback rejects callbacks from anyone outside the operator
// allowlist; unlike messages, rejected callbacks are answered silently
func (h *AdminHandlers) guardCallback(next callbackHandler) tgbot.HandlerFunc {
	return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		cq := update.CallbackQuery
		if cq == nil {
			return
		}
		h.answerCallback(ctx, bot, cq.ID)
		if !h.cfg.IsAdmin(cq.From.ID) {
			h.logger.Warn().Int64("user_id", cq.From.ID).Msg("Admin access denied")
			return
		}
		next(ctx, bot, cq)
	}
}

func (h *AdminHandlers) handleStart(ctx context.Context, bot *tgbot.Bot, msg *models.Message) {
	h.registration.Cancel(msg.From.ID)
	h.sendMessage(ctx, bot, msg.Chat.ID, msgAdminWelcome, adminMainMenu())
}

func (h *AdminHandlers) handleHelp(ctx context.Context, bot *tgbot.Bot, msg *models.Message) {
	h.sendMessage(ctx, bot, msg.Chat.ID, msgHelp, nil)
}

func (h *AdminHandlers) handleBotsMenu(ctx context.Context, bot *tgbot.Bot, msg *models.Message) {
	h.sendMessage(ctx, bot, msg.Chat.ID, "🤖 Bot management", botManagementMenu())
}

func (h *AdminHandlers) handleStats(ctx context.Context, bot *tgbot.Bot, msg *models.Message) {
	stats, err := h.stats.Collect(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to collect statistics")
		h.sendMessage(ctx, bot, msg.Chat.ID, "❌ Failed to collect statistics.", nil)
		return
	}
	h.sendMessage(ctx, bot, msg.Chat.ID, statsText(stats), nil)
}

func (h *AdminHandlers) handleListBots(ctx context.Context, bot *tgbot.Bot, msg *models.Message) {
	h.renderBotsList(ctx, bot, msg.Chat.ID)
}

// handleText feeds free text into the registration conversation
func (h *AdminHandlers) handleText(ctx context.Context, bot *tgbot.Bot, msg *models.Message) {
	result := h.registration.HandleInput(ctx, msg.From.ID, msg.Text)
	text, markup := h.renderStep(result)
	if text == "" {
		return
	}
	h.sendMessage(ctx, bot, msg.Chat.ID, text, markup)
}

// renderStep maps a registration step outcome to a reply
func (h *AdminHandlers) renderStep(result *usecase.StepResult) (string, models.ReplyMarkup) {
	switch result.Status {
	case usecase.StepIgnored:
		return "🤖 Use the menu below.", adminMainMenu()
	case usecase.StepTokenInvalid:
		return "❌ That does not look like a bot token. Send the token exactly as @BotFather gave it.", cancelButton()
	case usecase.StepTokenRejected:
		return "❌ Telegram rejected this token. Send another one.", cancelButton()
	case usecase.StepTokenAccepted:
		return fmt.Sprintf("✅ Token accepted for @%s.\n\n%s", result.Bot.Username, msgAskName), cancelButton()
	case usecase.StepNameTooShort:
		return "❌ The name is too short, send at least 2 characters.", cancelButton()
	case usecase.StepBotCreated:
		return fmt.Sprintf("✅ Bot @%s registered and started.\n\nNow add its gating channels.", result.Bot.Username),
			channelManagementMenu(result.Bot.ID)
	case usecase.StepBotCreateFailed:
		return "❌ Failed to register the bot: " + result.Detail, nil
	case usecase.StepChannelResolveFailed:
		return "❌ Could not resolve the channel: " + result.Detail + "\n\nTry again.", cancelButton()
	case usecase.StepChannelNotAdmin:
		return "❌ The bot is not an administrator of that channel. Promote it first, then try again.", cancelButton()
	case usecase.StepChannelRegistered:
		return fmt.Sprintf("✅ Channel %s registered.", result.Channel.Title), channelManagementMenu(result.Channel.BotID)
	case usecase.StepChannelDuplicate:
		return fmt.Sprintf("ℹ️ Channel %s is already registered for this bot.", result.Channel.Title),
			channelManagementMenu(result.Channel.BotID)
	case usecase.StepChannelFailed:
		return "❌ Failed to register the channel: " + result.Detail, nil
	}
	return "", nil
}

func (h *AdminHandlers) handleAddBot(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	h.registration.BeginAddBot(cq.From.ID)
	h.replyToCallback(ctx, bot, cq, msgAskToken, cancelButton())
}

func (h *AdminHandlers) handleAddChannel(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	botID, ok := parseID(cq.Data, actionAddChannel)
	if !ok {
		return
	}
	h.registration.BeginAddChannel(cq.From.ID, botID)
	h.replyToCallback(ctx, bot, cq, msgAskChannel, cancelButton())
}

func (h *AdminHandlers) handleCancel(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	h.registration.Cancel(cq.From.ID)
	h.replyToCallback(ctx, bot, cq, "❌ Cancelled.", adminMainMenu())
}

func (h *AdminHandlers) handleMainMenu(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	h.replyToCallback(ctx, bot, cq, msgAdminWelcome, adminMainMenu())
}

func (h *AdminHandlers) handleBotsMenuCallback(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	h.replyToCallback(ctx, bot, cq, "🤖 Bot management", botManagementMenu())
}

func (h *AdminHandlers) handleListBotsCallback(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	chatID, ok := callbackChatID(cq)
	if !ok {
		return
	}
	h.renderBotsList(ctx, bot, chatID)
}

func (h *AdminHandlers) renderBotsList(ctx context.Context, bot *tgbot.Bot, chatID int64) {
	bots, err := h.bots.GetAll(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list bots")
		h.sendMessage(ctx, bot, chatID, "❌ Failed to list bots.", nil)
		return
	}
	if len(bots) == 0 {
		h.sendMessage(ctx, bot, chatID, "ℹ️ No bots registered yet.", botManagementMenu())
		return
	}
	h.sendMessage(ctx, bot, chatID, "🤖 Registered bots:", botsList(bots))
}

func (h *AdminHandlers) handleBotDetail(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	botID, ok := parseID(cq.Data, actionBotDetail)
	if !ok {
		return
	}
	identity, err := h.bots.GetByID(ctx, botID)
	if err != nil {
		h.logger.Error().Err(err).Uint("bot_id", botID).Msg("Failed to load bot")
		h.replyToCallback(ctx, bot, cq, "❌ Bot not found.", nil)
		return
	}
	text := fmt.Sprintf("🤖 %s (@%s)", identity.Name, identity.Username)
	h.replyToCallback(ctx, bot, cq, text, channelManagementMenu(identity.ID))
}

func (h *AdminHandlers) handleListChannels(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	botID, ok := parseID(cq.Data, actionListChannels)
	if !ok {
		return
	}
	channels, err := h.channels.GetByBotID(ctx, botID)
	if err != nil {
		h.logger.Error().Err(err).Uint("bot_id", botID).Msg("Failed to list channels")
		h.replyToCallback(ctx, bot, cq, "❌ Failed to list channels.", nil)
		return
	}
	if len(channels) == 0 {
		h.replyToCallback(ctx, bot, cq, "ℹ️ No channels registered for this bot yet.", channelManagementMenu(botID))
		return
	}
	h.replyToCallback(ctx, bot, cq, "📢 Gating channels:", channelsList(channels, botID))
}

func (h *AdminHandlers) handleChannelDetail(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	channelID, ok := parseID(cq.Data, actionChannel)
	if !ok {
		return
	}
	ch, err := h.channels.GetByID(ctx, channelID)
	if err != nil {
		h.logger.Error().Err(err).Uint("channel_id", channelID).Msg("Failed to load channel")
		h.replyToCallback(ctx, bot, cq, "❌ Channel not found.", nil)
		return
	}
	h.replyToCallback(ctx, bot, cq, channelText(ch), channelActions(ch.ID, ch.BotID))
}

// handleDelBot removes a bot identity with its channels and files
// (FK cascades) and halts its update loop
func (h *AdminHandlers) handleDelBot(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	botID, ok := parseID(cq.Data, actionDelBot)
	if !ok {
		return
	}
	identity, err := h.bots.GetByID(ctx, botID)
	if err != nil {
		h.logger.Error().Err(err).Uint("bot_id", botID).Msg("Failed to load bot")
		h.replyToCallback(ctx, bot, cq, "❌ Bot not found.", nil)
		return
	}
	if err := h.bots.Delete(ctx, botID); err != nil {
		h.logger.Error().Err(err).Uint("bot_id", botID).Msg("Failed to delete bot")
		h.replyToCallback(ctx, bot, cq, "❌ Failed to delete the bot.", nil)
		return
	}
	h.fleet.Halt(botID)
	h.logger.Info().Uint("bot_id", botID).Str("username", identity.Username).Msg("Bot deleted")
	h.replyToCallback(ctx, bot, cq, fmt.Sprintf("🗑 Bot @%s deleted.", identity.Username), botManagementMenu())
}

func (h *AdminHandlers) handleDelChannel(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery) {
	channelID, ok := parseID(cq.Data, actionDelChannel)
	if !ok {
		return
	}
	ch, err := h.channels.GetByID(ctx, channelID)
	if err != nil {
		h.logger.Error().Err(err).Uint("channel_id", channelID).Msg("Failed to load channel")
		h.replyToCallback(ctx, bot, cq, "❌ Channel not found.", nil)
		return
	}
	if _, err := h.channels.Delete(ctx, ch.BotID, ch.ChannelID); err != nil {
		h.logger.Error().Err(err).Uint("channel_id", channelID).Msg("Failed to delete channel")
		h.replyToCallback(ctx, bot, cq, "❌ Failed to delete the channel.", nil)
		return
	}
	h.logger.Info().Uint("channel_id", channelID).Uint("bot_id", ch.BotID).Msg("Channel deleted")
	h.replyToCallback(ctx, bot, cq, fmt.Sprintf("🗑 Channel %s deleted.", ch.Title), channelManagementMenu(ch.BotID))
}

// replyToCallback sends a new message into the chat the callback came from
func (h *AdminHandlers) replyToCallback(ctx context.Context, bot *tgbot.Bot, cq *models.CallbackQuery, text string, markup models.ReplyMarkup) {
	chatID, ok := callbackChatID(cq)
	if !ok {
		h.logger.Warn().Str("data", cq.Data).Msg("Callback without an accessible chat")
		return
	}
	h.sendMessage(ctx, bot, chatID, text, markup)
}

func (h *AdminHandlers) sendMessage(ctx context.Context, bot *tgbot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error().Int64("chat_id", chatID).Err(err).Msg("Failed to send Telegram message")
	}
}

func (h *AdminHandlers) answerCallback(ctx context.Context, bot *tgbot.Bot, callbackID string) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: callbackID}); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}

// parseID extracts the numeric id suffix of a callback payload
func parseID(data, prefix string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(data, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
