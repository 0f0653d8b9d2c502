// Package app contains application bootstrap
package app

import (
	"go.uber.org/fx"

	"github.com/Conte777/MediaFlow/config"
	delivery "github.com/Conte777/MediaFlow/internal/delivery/telegram"
	"github.com/Conte777/MediaFlow/internal/infrastructure"
	"github.com/Conte777/MediaFlow/internal/repository/postgres"
	"github.com/Conte777/MediaFlow/internal/usecase"
)

// CreateApp creates fx application with all modules
func CreateApp() fx.Option {
	return fx.Options(
		// Configuration
		fx.Provide(config.Out),

		// Infrastructure (logger, metrics, database, telegram, http)
		infrastructure.Module,

		// Persistence
		postgres.Module,

		// Business logic
		usecase.Module,

		// Telegram delivery (admin bot routes, fleet routes)
		delivery.Module,
	)
}
