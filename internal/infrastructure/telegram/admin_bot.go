package telegram

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"
)

// AdminBot wraps the operator-facing Telegram bot
type AdminBot struct {
	bot    *tgbot.Bot
	logger zerolog.Logger
}

// NewAdminBot creates the admin bot from its token
func NewAdminBot(token string, logger zerolog.Logger, opts ...tgbot.Option) (*AdminBot, error) {
	if token == "" {
		return nil, fmt.Errorf("admin bot token is required")
	}

	b, err := tgbot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin bot: %w", err)
	}

	logger.Info().Msg("Admin bot created successfully")

	return &AdminBot{
		bot:    b,
		logger: logger,
	}, nil
}

// Raw returns the underlying telegram bot for handler registration
func (a *AdminBot) Raw() *tgbot.Bot {
	return a.bot
}

// Client returns a platform client backed by the admin bot's connection
func (a *AdminBot) Client() *Client {
	return NewClient(a.bot, a.logger)
}

// Start starts the admin bot (blocking call)
func (a *AdminBot) Start(ctx context.Context) error {
	a.logger.Info().Msg("Starting admin bot...")
	a.bot.Start(ctx)
	a.logger.Info().Msg("Admin bot stopped")
	return nil
}
