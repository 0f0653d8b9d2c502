package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
	"github.com/Conte777/MediaFlow/internal/infrastructure/metrics"
	pkgerrors "github.com/Conte777/MediaFlow/pkg/errors"
)

// DeliveryOutcome tags the result of a delivery attempt
type DeliveryOutcome int

const (
	// OutcomeDelivered means the artifact was dispatched
	OutcomeDelivered DeliveryOutcome = iota
	// OutcomeGated means the subscriber does not qualify yet
	OutcomeGated
	// OutcomeNotFound means the artifact does not exist
	OutcomeNotFound
	// OutcomeFailed means dispatch failed after a successful gate check
	OutcomeFailed
)

// DeliveryResult is the outcome of one delivery attempt
type DeliveryResult struct {
	Outcome DeliveryOutcome

	// Unmet lists the channels blocking the subscriber on OutcomeGated
	Unmet []domain.Channel

	// AlreadyDownloaded reports whether a ledger row existed before this
	// attempt; re-delivery is always allowed
	AlreadyDownloaded bool

	// Artifact is the resolved artifact on every outcome except
	// OutcomeNotFound
	Artifact *domain.Artifact
}

// LedgerUseCase gates artifact distribution behind the verifier and
// records each first qualifying delivery exactly once per
// (subscriber, artifact) pair
type LedgerUseCase struct {
	artifacts   domain.ArtifactRepository
	downloads   domain.DownloadRepository
	subscribers domain.SubscriberRepository
	verifier    *VerifierUseCase
	clients     domain.ClientProvider
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewLedgerUseCase creates the download ledger use case
func NewLedgerUseCase(
	artifacts domain.ArtifactRepository,
	downloads domain.DownloadRepository,
	subscribers domain.SubscriberRepository,
	verifier *VerifierUseCase,
	clients domain.ClientProvider,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		artifacts:   artifacts,
		downloads:   downloads,
		subscribers: subscribers,
		verifier:    verifier,
		clients:     clients,
		metrics:     m,
		logger:      logger.With().Str("component", "ledger").Logger(),
	}
}

// Deliver resolves the artifact, verifies the subscriber against the
// owning bot's channels and, on a pass, dispatches the payload into the
// given chat. The download is recorded only after a successful dispatch,
// and only when no prior record exists.
func (uc *LedgerUseCase) Deliver(ctx context.Context, userID, chatID int64, artifactID uint, caption string) (*DeliveryResult, error) {
	artifact, err := uc.artifacts.GetByID(ctx, artifactID)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactNotFound) {
			return &DeliveryResult{Outcome: OutcomeNotFound}, nil
		}
		return nil, err
	}

	qualifies, unmet, err := uc.verifier.Verify(ctx, userID, artifact.BotID)
	if err != nil {
		return nil, err
	}
	if !qualifies {
		return &DeliveryResult{
			Outcome:  OutcomeGated,
			Unmet:    unmet,
			Artifact: artifact,
		}, nil
	}

	// advisory check: a qualifying subscriber may always re-fetch, the
	// prior record only suppresses a second ledger row
	already, err := uc.downloads.HasDownloaded(ctx, userID, artifactID)
	if err != nil {
		uc.logger.Warn().Err(err).
			Int64("user_id", userID).
			Uint("artifact_id", artifactID).
			Msg("Ledger lookup failed, continuing without prior record")
		already = false
	}

	client, err := uc.clients.ClientFor(artifact.BotID)
	if err != nil {
		uc.logger.Error().Err(err).Uint("bot_id", artifact.BotID).Msg("Owner bot unavailable for dispatch")
		uc.metrics.DeliveryFailures.WithLabelValues(string(artifact.FileType)).Inc()
		return &DeliveryResult{Outcome: OutcomeFailed, Artifact: artifact}, nil
	}

	if err := client.SendMedia(ctx, artifact.FileType, chatID, artifact.FileID, caption); err != nil {
		uc.logger.Error().Err(err).
			Uint("artifact_id", artifactID).
			Int64("chat_id", chatID).
			Msg("Artifact dispatch failed")
		uc.metrics.DeliveryFailures.WithLabelValues(string(artifact.FileType)).Inc()
		return &DeliveryResult{Outcome: OutcomeFailed, Artifact: artifact}, nil
	}

	if already {
		uc.metrics.Redeliveries.Inc()
	} else {
		if err := uc.downloads.Record(ctx, userID, artifactID); err != nil {
			// the payload is already with the subscriber; losing the ledger
			// row is logged, not surfaced
			uc.logger.Error().Err(err).
				Int64("user_id", userID).
				Uint("artifact_id", artifactID).
				Msg("Failed to record download")
		} else {
			uc.metrics.DownloadsTotal.Inc()
		}
	}

	uc.logger.Info().
		Int64("user_id", userID).
		Uint("artifact_id", artifactID).
		Bool("redelivery", already).
		Msg("Artifact delivered")

	return &DeliveryResult{
		Outcome:           OutcomeDelivered,
		AlreadyDownloaded: already,
		Artifact:          artifact,
	}, nil
}

// TouchSubscriber upserts the subscriber on any inbound interaction
func (uc *LedgerUseCase) TouchSubscriber(ctx context.Context, subscriber *domain.Subscriber) error {
	return uc.subscribers.Upsert(ctx, subscriber)
}

// StoreArtifact persists a media object uploaded by the operator and
// returns it with its assigned id
func (uc *LedgerUseCase) StoreArtifact(ctx context.Context, artifact *domain.Artifact) error {
	if !artifact.FileType.Valid() {
		return pkgerrors.NewValidationError("unsupported media kind " + string(artifact.FileType))
	}
	if err := uc.artifacts.Create(ctx, artifact); err != nil {
		return err
	}
	uc.metrics.ArtifactsStored.Inc()
	uc.logger.Info().
		Uint("artifact_id", artifact.ID).
		Uint("bot_id", artifact.BotID).
		Str("kind", string(artifact.FileType)).
		Msg("Artifact stored")
	return nil
}
