package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
	"github.com/Conte777/MediaFlow/internal/infrastructure/metrics"
)

// RouteRegistrar registers the user-facing handlers of one bot identity on
// its freshly created bot instance. Implemented by the delivery layer; set
// via SetRegistrar to break the cyclic dependency between the fleet and
// the handlers that need the fleet's clients.
type RouteRegistrar interface {
	RegisterUserRoutes(b *tgbot.Bot, identity domain.BotIdentity)
}

// Fleet runs one independent update-polling loop per registered bot
// identity. Loops share nothing in-process beyond the persisted store.
type Fleet struct {
	botRepo   domain.BotRepository
	registrar RouteRegistrar
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	mu      sync.RWMutex
	running map[uint]*fleetBot
	ctx     context.Context
	cancel  context.CancelFunc
}

// fleetBot is one launched identity
type fleetBot struct {
	identity domain.BotIdentity
	bot      *tgbot.Bot
	client   *Client
	cancel   context.CancelFunc
}

// NewFleet creates the bot fleet
func NewFleet(botRepo domain.BotRepository, m *metrics.Metrics, logger zerolog.Logger) *Fleet {
	return &Fleet{
		botRepo: botRepo,
		metrics: m,
		logger:  logger.With().Str("component", "fleet").Logger(),
		running: make(map[uint]*fleetBot),
	}
}

// SetRegistrar sets the delivery-layer route registrar. Called by fx.Invoke
// before Start.
func (f *Fleet) SetRegistrar(r RouteRegistrar) {
	f.registrar = r
}

// Start loads all persisted bot identities and launches a polling loop for
// each. A single identity failing to launch does not abort the others.
func (f *Fleet) Start(ctx context.Context) error {
	f.mu.Lock()
	f.ctx, f.cancel = context.WithCancel(context.Background())
	f.mu.Unlock()

	identities, err := f.botRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load bot identities: %w", err)
	}

	for i := range identities {
		if err := f.Launch(&identities[i]); err != nil {
			f.logger.Error().
				Err(err).
				Uint("bot_id", identities[i].ID).
				Str("name", identities[i].Name).
				Msg("Failed to launch bot, skipping")
		}
	}

	f.logger.Info().Int("bots", len(identities)).Msg("Fleet started")
	return nil
}

// Launch starts the update loop for one bot identity. Safe to call at
// runtime for identities registered after startup.
func (f *Fleet) Launch(identity *domain.BotIdentity) error {
	if f.registrar == nil {
		return fmt.Errorf("fleet registrar is not set")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ctx == nil {
		return fmt.Errorf("fleet is not started")
	}
	if _, ok := f.running[identity.ID]; ok {
		return nil
	}

	b, err := tgbot.New(identity.Token)
	if err != nil {
		return fmt.Errorf("failed to create bot %q: %w", identity.Name, err)
	}

	f.registrar.RegisterUserRoutes(b, *identity)

	botCtx, cancel := context.WithCancel(f.ctx)
	fb := &fleetBot{
		identity: *identity,
		bot:      b,
		client:   NewClient(b, f.logger.With().Uint("bot_id", identity.ID).Logger()),
		cancel:   cancel,
	}
	f.running[identity.ID] = fb
	f.metrics.ActiveBots.Inc()

	go func() {
		f.logger.Info().
			Uint("bot_id", identity.ID).
			Str("username", identity.Username).
			Msg("Starting bot update loop")
		b.Start(botCtx)
		f.logger.Info().Uint("bot_id", identity.ID).Msg("Bot update loop stopped")
	}()

	return nil
}

// ClientFor returns the platform client for a launched bot identity
func (f *Fleet) ClientFor(botID uint) (domain.PlatformClient, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	fb, ok := f.running[botID]
	if !ok {
		return nil, fmt.Errorf("bot %d has no running update loop", botID)
	}
	return fb.client, nil
}

// Halt stops the polling loop of one bot identity, if it is running
func (f *Fleet) Halt(botID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fb, ok := f.running[botID]
	if !ok {
		return
	}
	fb.cancel()
	delete(f.running, botID)
	f.metrics.ActiveBots.Dec()
	f.logger.Info().Uint("bot_id", botID).Msg("Bot update loop halted")
}

// Stop cancels every polling loop
func (f *Fleet) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
	}
	for id := range f.running {
		delete(f.running, id)
		f.metrics.ActiveBots.Dec()
	}

	f.logger.Info().Msg("Fleet stopped")
	return nil
}
