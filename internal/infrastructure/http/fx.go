// Package http contains the health/metrics HTTP server infrastructure
package http

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/Conte777/MediaFlow/config"
	"github.com/Conte777/MediaFlow/internal/infrastructure/http/server"
)

// Module provides the HTTP server for fx dependency injection
var Module = fx.Module("http",
	fx.Provide(provideServer),
	fx.Invoke(registerLifecycle),
)

// provideServer creates the HTTP server from config
func provideServer(cfg *config.ServiceConfig, logger zerolog.Logger) *server.Server {
	srv := server.NewServer(cfg.Name, cfg.Port, logger.With().Str("component", "http").Logger())
	srv.RegisterHealth()
	srv.RegisterMetrics()
	return srv
}

// registerLifecycle registers server lifecycle hooks
func registerLifecycle(lc fx.Lifecycle, srv *server.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
