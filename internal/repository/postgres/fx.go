package postgres

import (
	"go.uber.org/fx"
)

// Module provides all repositories for fx dependency injection
var Module = fx.Module("repository",
	fx.Provide(NewBotRepository),
	fx.Provide(NewChannelRepository),
	fx.Provide(NewSubscriberRepository),
	fx.Provide(NewArtifactRepository),
	fx.Provide(NewDownloadRepository),
)
