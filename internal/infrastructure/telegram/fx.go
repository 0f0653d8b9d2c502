package telegram

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/MediaFlow/config"
	"github.com/Conte777/MediaFlow/internal/domain"
)

// Module provides Telegram infrastructure for fx dependency injection.
// Lifecycle hooks live in the delivery layer, which wires handlers onto the
// bots before anything starts polling.
var Module = fx.Module("telegram",
	fx.Provide(provideAdminBot),
	fx.Provide(NewFleet),
	fx.Provide(provideAdminClient),
	fx.Provide(provideClientProvider),
	fx.Provide(provideLauncher),
)

// provideAdminClient exposes the admin bot's connection as the default
// platform client, used for bot-agnostic calls like token probing
func provideAdminClient(a *AdminBot) domain.PlatformClient {
	return a.Client()
}

// provideAdminBot creates the admin bot from config
func provideAdminBot(cfg *config.TelegramConfig, logger zerolog.Logger) (*AdminBot, error) {
	return NewAdminBot(cfg.AdminBotToken, logger.With().Str("component", "admin-bot").Logger())
}

// provideClientProvider exposes the fleet as domain.ClientProvider
func provideClientProvider(f *Fleet) domain.ClientProvider {
	return f
}

// provideLauncher exposes the fleet as domain.BotLauncher
func provideLauncher(f *Fleet) domain.BotLauncher {
	return f
}
