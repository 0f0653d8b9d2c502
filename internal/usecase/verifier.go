package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
	"github.com/Conte777/MediaFlow/internal/infrastructure/metrics"
)

// VerifierUseCase decides whether a subscriber qualifies for a bot's files
// by checking membership in every gating channel
type VerifierUseCase struct {
	channels domain.ChannelRepository
	clients  domain.ClientProvider
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewVerifierUseCase creates the subscription verifier
func NewVerifierUseCase(
	channels domain.ChannelRepository,
	clients domain.ClientProvider,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *VerifierUseCase {
	return &VerifierUseCase{
		channels: channels,
		clients:  clients,
		metrics:  m,
		logger:   logger.With().Str("component", "verifier").Logger(),
	}
}

// Verify checks the subscriber against every channel gating the bot. It
// returns whether the subscriber qualifies and the channels that are not
// met, in the stored channel order. A bot with zero channels trivially
// qualifies. An error is returned only for a store failure; platform
// failures are folded into the unmet list (fail closed).
func (uc *VerifierUseCase) Verify(ctx context.Context, userID int64, botID uint) (bool, []domain.Channel, error) {
	channels, err := uc.channels.GetByBotID(ctx, botID)
	if err != nil {
		return false, nil, err
	}

	uc.metrics.VerificationsTotal.Inc()

	if len(channels) == 0 {
		return true, nil, nil
	}

	client, err := uc.clients.ClientFor(botID)
	if err != nil {
		// no running loop for the owner bot: every channel is unverifiable
		uc.logger.Error().Err(err).Uint("bot_id", botID).Msg("Owner bot unavailable, failing closed")
		uc.metrics.VerificationsGated.Inc()
		return false, channels, nil
	}

	// channels are checked concurrently; results land at their original
	// index so the unmet list keeps the stored order
	met := make([]bool, len(channels))
	var wg sync.WaitGroup
	for i := range channels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			met[i] = uc.channelMet(ctx, client, userID, &channels[i])
		}(i)
	}
	wg.Wait()

	var unmet []domain.Channel
	for i, ok := range met {
		if !ok {
			unmet = append(unmet, channels[i])
		}
	}

	if len(unmet) > 0 {
		uc.metrics.VerificationsGated.Inc()
		return false, unmet, nil
	}
	return true, nil, nil
}

// channelMet checks one channel; any platform failure counts as unmet
func (uc *VerifierUseCase) channelMet(ctx context.Context, client domain.PlatformClient, userID int64, channel *domain.Channel) bool {
	status, err := client.GetMembership(ctx, channel.ChannelID, userID)
	if err != nil {
		uc.metrics.OracleFailures.Inc()
		uc.logger.Warn().
			Err(err).
			Str("channel_id", channel.ChannelID).
			Int64("user_id", userID).
			Msg("Membership lookup failed, treating channel as unmet")
		return false
	}

	if status.IsSubscribed() {
		return true
	}

	// For private channels a restricted status is accepted as "join request
	// pending". Telegram does not guarantee that reading; it is a heuristic
	// carried over deliberately, and it applies to private channels only.
	if channel.Type == domain.ChannelTypePrivate && status == domain.MembershipRestricted {
		return true
	}

	return false
}
