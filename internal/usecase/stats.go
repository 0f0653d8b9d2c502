package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// StatsUseCase assembles the counters shown on the operator stats screen
type StatsUseCase struct {
	bots        domain.BotRepository
	channels    domain.ChannelRepository
	artifacts   domain.ArtifactRepository
	subscribers domain.SubscriberRepository
	downloads   domain.DownloadRepository
	logger      zerolog.Logger
}

// NewStatsUseCase creates the stats use case
func NewStatsUseCase(
	bots domain.BotRepository,
	channels domain.ChannelRepository,
	artifacts domain.ArtifactRepository,
	subscribers domain.SubscriberRepository,
	downloads domain.DownloadRepository,
	logger zerolog.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		bots:        bots,
		channels:    channels,
		artifacts:   artifacts,
		subscribers: subscribers,
		downloads:   downloads,
		logger:      logger.With().Str("component", "stats").Logger(),
	}
}

// Collect gathers the aggregate and per-bot counters
func (uc *StatsUseCase) Collect(ctx context.Context) (*domain.Stats, error) {
	users, err := uc.subscribers.Count(ctx)
	if err != nil {
		return nil, err
	}

	downloads, err := uc.downloads.Count(ctx)
	if err != nil {
		return nil, err
	}

	bots, err := uc.bots.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		TotalUsers:     users,
		TotalDownloads: downloads,
		Bots:           make([]domain.BotStats, 0, len(bots)),
	}

	for _, bot := range bots {
		channels, err := uc.channels.CountByBotID(ctx, bot.ID)
		if err != nil {
			return nil, err
		}
		files, err := uc.artifacts.CountByBotID(ctx, bot.ID)
		if err != nil {
			return nil, err
		}
		stats.Bots = append(stats.Bots, domain.BotStats{
			Bot:      bot,
			Channels: channels,
			Files:    files,
		})
	}

	return stats, nil
}
