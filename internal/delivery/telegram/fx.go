package telegram

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	infratg "github.com/Conte777/MediaFlow/internal/infrastructure/telegram"
)

var Module = fx.Module("delivery",
	fx.Provide(
		NewUserHandlers,
		NewAdminHandlers,
	),
	fx.Invoke(wireAndRegister),
)

// wireAndRegister connects the handlers to the transport. The fleet
// gets its route registrar here, breaking the fleet/handlers cycle,
// and both the fleet and the admin bot are tied to the fx lifecycle.
func wireAndRegister(
	lc fx.Lifecycle,
	fleet *infratg.Fleet,
	adminBot *infratg.AdminBot,
	userHandlers *UserHandlers,
	adminHandlers *AdminHandlers,
	logger zerolog.Logger,
) {
	fleet.SetRegistrar(userHandlers)
	adminHandlers.Register(adminBot.Raw())

	log := logger.With().Str("component", "delivery").Logger()

	var cancelAdmin context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := fleet.Start(ctx); err != nil {
				return err
			}

			adminCtx, cancel := context.WithCancel(context.Background())
			cancelAdmin = cancel
			go func() {
				if err := adminBot.Start(adminCtx); err != nil {
					log.Error().Err(err).Msg("Admin bot stopped with error")
				}
			}()

			log.Info().Msg("Telegram delivery started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancelAdmin != nil {
				cancelAdmin()
			}
			return fleet.Stop()
		},
	})
}
