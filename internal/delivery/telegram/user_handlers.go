package telegram

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/config"
	"github.com/Conte777/MediaFlow/internal/domain"
	"github.com/Conte777/MediaFlow/internal/usecase"
)

// UserHandlers serves the delivery bots. The same handler set is
// registered on every bot of the fleet; the owning identity is bound
// per registration.
type UserHandlers struct {
	ledger *usecase.LedgerUseCase
	cfg    *config.TelegramConfig
	logger zerolog.Logger
}

func NewUserHandlers(
	ledger *usecase.LedgerUseCase,
	cfg *config.TelegramConfig,
	logger zerolog.Logger,
) *UserHandlers {
	return &UserHandlers{
		ledger: ledger,
		cfg:    cfg,
		logger: logger.With().Str("component", "user_handlers").Logger(),
	}
}

// RegisterUserRoutes wires the routes of one delivery bot
func (h *UserHandlers) RegisterUserRoutes(b *tgbot.Bot, identity domain.BotIdentity) {
	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, h.handleStart)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionDownload, tgbot.MatchTypePrefix, func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		h.handleDownload(ctx, bot, update, actionDownload)
	})
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, actionCheck, tgbot.MatchTypePrefix, func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		h.handleDownload(ctx, bot, update, actionCheck)
	})
	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && mediaOf(update.Message) != nil
	}, func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
		h.handleMedia(ctx, bot, update, identity)
	})
}

// handleStart greets the user and records them as a subscriber. A deep
// link payload ("/start <artifact id>") triggers a delivery right away.
func (h *UserHandlers) handleStart(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
	user := update.Message.From
	chatID := update.Message.Chat.ID

	if err := h.ledger.TouchSubscriber(ctx, &domain.Subscriber{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}); err != nil {
		h.logger.Error().Int64("user_id", user.ID).Err(err).Msg("Failed to record subscriber")
	}

	payload := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/start"))
	if artifactID, err := strconv.ParseUint(payload, 10, 64); err == nil && artifactID > 0 {
		h.deliver(ctx, bot, chatID, 0, user.ID, uint(artifactID))
		return
	}

	h.sendMessage(ctx, bot, chatID, msgUserWelcome, nil)
}

// handleDownload serves both the download button and the re-check
// button; both carry the artifact id so the check resumes the delivery
func (h *UserHandlers) handleDownload(ctx context.Context, bot *tgbot.Bot, update *models.Update, prefix string) {
	cq := update.CallbackQuery
	h.answerCallback(ctx, bot, cq.ID)

	chatID, ok := callbackChatID(cq)
	if !ok {
		h.logger.Warn().Str("data", cq.Data).Msg("Callback without an accessible chat")
		return
	}

	artifactID, err := strconv.ParseUint(strings.TrimPrefix(cq.Data, prefix), 10, 64)
	if err != nil {
		h.logger.Warn().Str("data", cq.Data).Msg("Malformed callback payload")
		return
	}

	// a still-gated recheck edits the original message in place; the id of
	// an accessible callback message makes that possible
	var messageID int
	if cq.Message.Message != nil {
		messageID = cq.Message.Message.ID
	}

	h.deliver(ctx, bot, chatID, messageID, cq.From.ID, uint(artifactID))
}

// handleMedia turns media sent by an operator into a stored artifact
func (h *UserHandlers) handleMedia(ctx context.Context, bot *tgbot.Bot, update *models.Update, identity domain.BotIdentity) {
	msg := update.Message
	if !h.cfg.IsAdmin(msg.From.ID) {
		return
	}

	media := mediaOf(msg)
	artifact := &domain.Artifact{
		BotID:    identity.ID,
		FileID:   media.fileID,
		FileType: media.kind,
	}
	if media.name != "" {
		name := media.name
		artifact.FileName = &name
	}
	if err := h.ledger.StoreArtifact(ctx, artifact); err != nil {
		h.logger.Error().Uint("bot_id", identity.ID).Err(err).Msg("Failed to store artifact")
		h.sendMessage(ctx, bot, msg.Chat.ID, "❌ Failed to store the file.", nil)
		return
	}

	h.logger.Info().Uint("artifact_id", artifact.ID).Str("kind", string(media.kind)).Msg("Artifact stored")
	h.sendMessage(ctx, bot, msg.Chat.ID,
		"✅ File stored, id "+strconv.FormatUint(uint64(artifact.ID), 10)+".\n\nShare it with the download button below.",
		&models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📥 Download", CallbackData: actionDownload + strconv.FormatUint(uint64(artifact.ID), 10)}},
		}})
}

// deliver runs the gated delivery and renders its outcome. messageID is
// the callback message to edit on a gated outcome, 0 when there is none.
func (h *UserHandlers) deliver(ctx context.Context, bot *tgbot.Bot, chatID int64, messageID int, userID int64, artifactID uint) {
	result, err := h.ledger.Deliver(ctx, userID, chatID, artifactID, msgFileCaption)
	if err != nil {
		h.logger.Error().Int64("user_id", userID).Uint("artifact_id", artifactID).Err(err).Msg("Delivery failed")
		h.sendMessage(ctx, bot, chatID, msgSendFailed, nil)
		return
	}

	switch result.Outcome {
	case usecase.OutcomeDelivered:
		// media already sent by the ledger
	case usecase.OutcomeGated:
		h.showGate(ctx, bot, chatID, messageID, result.Unmet, artifactID)
	case usecase.OutcomeNotFound:
		h.sendMessage(ctx, bot, chatID, msgNotFound, nil)
	default:
		h.sendMessage(ctx, bot, chatID, msgSendFailed, nil)
	}
}

// showGate renders the unmet-channel prompt, editing the originating
// message when there is one so a failed recheck does not pile up prompts
func (h *UserHandlers) showGate(ctx context.Context, bot *tgbot.Bot, chatID int64, messageID int, unmet []domain.Channel, artifactID uint) {
	text := gatedText(unmet)
	markup := unmetChannelButtons(unmet, artifactID)

	if messageID == 0 {
		h.sendMessage(ctx, bot, chatID, text, markup)
		return
	}

	editCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := bot.EditMessageText(editCtx, &tgbot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		// an unchanged text is rejected by the platform; nothing to do
		h.logger.Debug().Int("message_id", messageID).Err(err).Msg("Gate prompt edit failed")
	}
}

func (h *UserHandlers) sendMessage(ctx context.Context, bot *tgbot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
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

func (h *UserHandlers) answerCallback(ctx context.Context, bot *tgbot.Bot, callbackID string) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: callbackID}); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to answer callback query")
	}
}

// mediaRef is a media attachment extracted from an incoming message
type mediaRef struct {
	fileID string
	kind   domain.MediaKind
	name   string
}

// mediaOf extracts the supported media attachment of a message, if any.
// For photos the largest size is taken.
func mediaOf(msg *models.Message) *mediaRef {
	switch {
	case msg.Video != nil:
		return &mediaRef{fileID: msg.Video.FileID, kind: domain.MediaKindVideo, name: msg.Video.FileName}
	case msg.Document != nil:
		return &mediaRef{fileID: msg.Document.FileID, kind: domain.MediaKindDocument, name: msg.Document.FileName}
	case len(msg.Photo) > 0:
		return &mediaRef{fileID: msg.Photo[len(msg.Photo)-1].FileID, kind: domain.MediaKindPhoto}
	case msg.Audio != nil:
		return &mediaRef{fileID: msg.Audio.FileID, kind: domain.MediaKindAudio, name: msg.Audio.FileName}
	}
	return nil
}

// callbackChatID resolves the chat a callback originated from
func callbackChatID(cq *models.CallbackQuery) (int64, bool) {
	if cq.Message.Message != nil {
		return cq.Message.Message.Chat.ID, true
	}
	if cq.Message.InaccessibleMessage != nil {
		return cq.Message.InaccessibleMessage.Chat.ID, true
	}
	return 0, false
}
