package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
	"github.com/Conte777/MediaFlow/internal/infrastructure/metrics"
)

const (
	// minTokenLength is the structural lower bound on a bot token; anything
	// shorter is rejected before any platform call is attempted
	minTokenLength = 40

	// minBotNameLength is the minimum display name length in runes
	minBotNameLength = 2
)

// StepStatus tags the outcome of one registration conversation step
type StepStatus int

const (
	// StepIgnored means the operator has no active conversation
	StepIgnored StepStatus = iota
	// StepTokenInvalid means the token failed the structural check; re-prompt
	StepTokenInvalid
	// StepTokenRejected means the platform rejected the token; re-prompt
	StepTokenRejected
	// StepTokenAccepted means the token resolved; the name is asked next
	StepTokenAccepted
	// StepNameTooShort means the display name is too short; re-prompt
	StepNameTooShort
	// StepBotCreated means the bot identity was committed and launched
	StepBotCreated
	// StepBotCreateFailed means the commit failed; conversation is over
	StepBotCreateFailed
	// StepChannelResolveFailed means the channel reference did not resolve
	// or the owner bot has no running loop; re-prompt
	StepChannelResolveFailed
	// StepChannelNotAdmin means the owner bot lacks admin rights; re-prompt
	StepChannelNotAdmin
	// StepChannelRegistered means the channel was committed
	StepChannelRegistered
	// StepChannelDuplicate means the channel was already registered
	StepChannelDuplicate
	// StepChannelFailed means the channel commit failed; conversation is over
	StepChannelFailed
)

// StepResult is the outcome of feeding one operator input to the
// registration state machine
type StepResult struct {
	Status StepStatus

	// Detail carries the failure detail for re-prompt messages
	Detail string

	// Bot is set on StepTokenAccepted (username only) and StepBotCreated
	Bot *domain.BotIdentity

	// Channel is set on StepChannelRegistered and StepChannelDuplicate
	Channel *domain.Channel
}

// RegistrationUseCase drives the two operator onboarding conversations:
// bot onboarding (token, then name) and channel onboarding (one channel
// reference, validated against the owning bot's rights)
type RegistrationUseCase struct {
	bots     domain.BotRepository
	channels domain.ChannelRepository
	clients  domain.ClientProvider
	prober   domain.PlatformClient
	launcher domain.BotLauncher
	sessions *SessionStore
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewRegistrationUseCase creates the registration use case. The prober is
// any platform client; token validation does not depend on a particular
// bot identity.
func NewRegistrationUseCase(
	bots domain.BotRepository,
	channels domain.ChannelRepository,
	clients domain.ClientProvider,
	prober domain.PlatformClient,
	launcher domain.BotLauncher,
	sessions *SessionStore,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		bots:     bots,
		channels: channels,
		clients:  clients,
		prober:   prober,
		launcher: launcher,
		sessions: sessions,
		metrics:  m,
		logger:   logger.With().Str("component", "registration").Logger(),
	}
}

// Active reports whether the operator has a conversation in flight
func (uc *RegistrationUseCase) Active(operatorID int64) bool {
	return uc.sessions.State(operatorID) != StateIdle
}

// BeginAddBot starts the bot onboarding conversation
func (uc *RegistrationUseCase) BeginAddBot(operatorID int64) {
	uc.sessions.Update(operatorID, func(s *Session) {
		s.reset()
		s.State = StateAwaitingToken
	})
	uc.logger.Info().Int64("operator_id", operatorID).Msg("Bot onboarding started")
}

// BeginAddChannel starts the channel onboarding conversation for the given
// owner bot
func (uc *RegistrationUseCase) BeginAddChannel(operatorID int64, botID uint) {
	uc.sessions.Update(operatorID, func(s *Session) {
		s.reset()
		s.State = StateAwaitingChannel
		s.BotID = botID
	})
	uc.logger.Info().
		Int64("operator_id", operatorID).
		Uint("bot_id", botID).
		Msg("Channel onboarding started")
}

// Cancel unconditionally discards the operator's draft and returns the
// conversation to idle
func (uc *RegistrationUseCase) Cancel(operatorID int64) {
	uc.sessions.Update(operatorID, func(s *Session) {
		s.reset()
	})
	uc.logger.Info().Int64("operator_id", operatorID).Msg("Conversation cancelled")
}

// HandleInput feeds one operator text input to the state machine. The
// whole step, platform calls included, runs under the operator's session
// lock, so concurrent messages from the same operator cannot interleave.
func (uc *RegistrationUseCase) HandleInput(ctx context.Context, operatorID int64, text string) *StepResult {
	result := &StepResult{Status: StepIgnored}

	uc.sessions.Update(operatorID, func(s *Session) {
		switch s.State {
		case StateAwaitingToken:
			result = uc.submitToken(ctx, s, text)
		case StateAwaitingName:
			result = uc.submitName(ctx, s, text)
		case StateAwaitingChannel:
			result = uc.submitChannel(ctx, s, text)
		}
	})

	return result
}

// submitToken validates and resolves a candidate bot token
func (uc *RegistrationUseCase) submitToken(ctx context.Context, s *Session, text string) *StepResult {
	token := strings.TrimSpace(text)

	if !strings.Contains(token, ":") || len(token) < minTokenLength {
		return &StepResult{Status: StepTokenInvalid}
	}

	profile, err := uc.prober.ResolveIdentity(ctx, token)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("Token validation failed")
		return &StepResult{Status: StepTokenRejected, Detail: err.Error()}
	}

	s.Token = token
	s.BotUsername = profile.Username
	s.State = StateAwaitingName

	return &StepResult{
		Status: StepTokenAccepted,
		Bot:    &domain.BotIdentity{Username: profile.Username},
	}
}

// submitName commits the bot identity draft
func (uc *RegistrationUseCase) submitName(ctx context.Context, s *Session, text string) *StepResult {
	name := strings.TrimSpace(text)

	if utf8.RuneCountInString(name) < minBotNameLength {
		return &StepResult{Status: StepNameTooShort}
	}

	bot := &domain.BotIdentity{
		Token:    s.Token,
		Name:     name,
		Username: s.BotUsername,
	}

	err := uc.bots.Create(ctx, bot)

	// success or failure, the draft is discarded and the conversation ends
	s.reset()

	if err != nil {
		uc.logger.Error().Err(err).Str("name", name).Msg("Failed to commit bot identity")
		return &StepResult{Status: StepBotCreateFailed, Detail: err.Error()}
	}

	uc.metrics.BotsRegistered.Inc()
	uc.logger.Info().
		Uint("bot_id", bot.ID).
		Str("username", bot.Username).
		Msg("Bot identity registered")

	if err := uc.launcher.Launch(bot); err != nil {
		// the identity is persisted; the loop will come up on next restart
		uc.logger.Error().Err(err).Uint("bot_id", bot.ID).Msg("Failed to launch registered bot")
	}

	return &StepResult{Status: StepBotCreated, Bot: bot}
}

// submitChannel resolves, validates and commits a channel reference
func (uc *RegistrationUseCase) submitChannel(ctx context.Context, s *Session, text string) *StepResult {
	ref := strings.TrimSpace(text)

	client, err := uc.clients.ClientFor(s.BotID)
	if err != nil {
		uc.logger.Warn().Err(err).Uint("bot_id", s.BotID).Msg("Owner bot unavailable")
		return &StepResult{Status: StepChannelResolveFailed, Detail: err.Error()}
	}

	info, err := client.ResolveChannel(ctx, ref)
	if err != nil {
		uc.logger.Warn().Err(err).Str("ref", ref).Msg("Channel resolution failed")
		return &StepResult{Status: StepChannelResolveFailed, Detail: err.Error()}
	}

	status, err := client.GetOwnMembership(ctx, info.ChannelID)
	if err != nil {
		uc.logger.Warn().Err(err).Str("channel_id", info.ChannelID).Msg("Own membership lookup failed")
		return &StepResult{Status: StepChannelResolveFailed, Detail: err.Error()}
	}
	if !status.CanManage() {
		return &StepResult{Status: StepChannelNotAdmin}
	}

	channel := &domain.Channel{
		BotID:     s.BotID,
		ChannelID: info.ChannelID,
		Title:     info.Title,
		Type:      domain.ChannelTypePublic,
	}
	if info.Username != "" {
		username := info.Username
		channel.Username = &username
	} else {
		channel.Type = domain.ChannelTypePrivate
	}

	if channel.Type == domain.ChannelTypePrivate {
		// best effort: a private channel without an invite link is still
		// registered
		if link, err := client.ExportInviteLink(ctx, info.ChannelID); err != nil {
			uc.logger.Warn().Err(err).Str("channel_id", info.ChannelID).Msg("Invite link export failed")
		} else {
			channel.InviteLink = &link
		}
	}

	ok, err := uc.channels.Register(ctx, channel)

	// any commit outcome ends the conversation
	s.reset()

	if err != nil {
		uc.logger.Error().Err(err).Str("channel_id", channel.ChannelID).Msg("Failed to commit channel")
		return &StepResult{Status: StepChannelFailed, Detail: err.Error()}
	}
	if !ok {
		return &StepResult{Status: StepChannelDuplicate, Channel: channel}
	}

	uc.metrics.ChannelsRegistered.Inc()
	uc.logger.Info().
		Uint("bot_id", channel.BotID).
		Str("channel_id", channel.ChannelID).
		Str("type", string(channel.Type)).
		Msg("Channel registered")

	return &StepResult{Status: StepChannelRegistered, Channel: channel}
}
