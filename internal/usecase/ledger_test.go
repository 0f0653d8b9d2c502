package usecase

import (
	"context"
	"testing"

	"github.com/Conte777/MediaFlow/internal/domain"
)

type ledgerFixture struct {
	artifacts   *mockArtifactRepository
	downloads   *mockDownloadRepository
	subscribers *mockSubscriberRepository
	channels    *mockChannelRepository
	clients     *mockClientProvider
}

func newLedger(f *ledgerFixture) *LedgerUseCase {
	verifier := NewVerifierUseCase(f.channels, f.clients, newTestMetrics(), testLogger())
	return NewLedgerUseCase(f.artifacts, f.downloads, f.subscribers, verifier, f.clients, newTestMetrics(), testLogger())
}

func defaultFixture() *ledgerFixture {
	return &ledgerFixture{
		artifacts: &mockArtifactRepository{
			getByIDFunc: func(ctx context.Context, id uint) (*domain.Artifact, error) {
				return &domain.Artifact{ID: id, BotID: 7, FileID: "file-abc", FileType: domain.MediaKindVideo}, nil
			},
		},
		downloads:   &mockDownloadRepository{},
		subscribers: &mockSubscriberRepository{},
		channels:    &mockChannelRepository{},
		clients:     &mockClientProvider{},
	}
}

func TestDeliver_ArtifactNotFound(t *testing.T) {
	f := defaultFixture()
	f.artifacts.getByIDFunc = nil // falls back to ErrArtifactNotFound

	result, err := newLedger(f).Deliver(context.Background(), 42, 42, 9, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Errorf("outcome = %v, want OutcomeNotFound", result.Outcome)
	}
}

func TestDeliver_Gated(t *testing.T) {
	f := defaultFixture()
	f.channels.getByBotIDFunc = func(ctx context.Context, botID uint) ([]domain.Channel, error) {
		return []domain.Channel{{ID: 1, BotID: 7, ChannelID: "-100100", Type: domain.ChannelTypePublic}}, nil
	}
	sent := false
	f.clients.clientForFunc = func(botID uint) (domain.PlatformClient, error) {
		return &mockPlatformClient{
			getMembershipFunc: func(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error) {
				return domain.MembershipLeft, nil
			},
			sendMediaFunc: func(ctx context.Context, kind domain.MediaKind, chatID int64, fileID, caption string) error {
				sent = true
				return nil
			},
		}, nil
	}
	result, err := newLedger(f).Deliver(context.Background(), 42, 42, 9, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeGated {
		t.Fatalf("outcome = %v, want OutcomeGated", result.Outcome)
	}
	if len(result.Unmet) != 1 {
		t.Errorf("expected one unmet channel, got %d", len(result.Unmet))
	}
	if sent {
		t.Error("nothing must be dispatched to a gated subscriber")
	}
}

func TestDeliver_FirstDownloadRecorded(t *testing.T) {
	f := defaultFixture()

	var recorded []uint
	f.downloads.recordFunc = func(ctx context.Context, userID int64, fileID uint) error {
		recorded = append(recorded, fileID)
		return nil
	}

	result, err := newLedger(f).Deliver(context.Background(), 42, 42, 9, "caption")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Fatalf("outcome = %v, want OutcomeDelivered", result.Outcome)
	}
	if result.AlreadyDownloaded {
		t.Error("first delivery must not be flagged as a re-delivery")
	}
	if len(recorded) != 1 || recorded[0] != 9 {
		t.Errorf("expected exactly one ledger row for artifact 9, got %v", recorded)
	}
}

func TestDeliver_RedeliveryNotRecordedTwice(t *testing.T) {
	f := defaultFixture()
	f.downloads.hasDownloadedFunc = func(ctx context.Context, userID int64, fileID uint) (bool, error) {
		return true, nil
	}

	recorded := 0
	f.downloads.recordFunc = func(ctx context.Context, userID int64, fileID uint) error {
		recorded++
		return nil
	}

	result, err := newLedger(f).Deliver(context.Background(), 42, 42, 9, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Fatalf("outcome = %v, want OutcomeDelivered", result.Outcome)
	}
	if !result.AlreadyDownloaded {
		t.Error("expected the re-delivery flag")
	}
	if recorded != 0 {
		t.Errorf("a re-delivery must not add a ledger row, got %d inserts", recorded)
	}
}

func TestDeliver_DispatchFailureNotRecorded(t *testing.T) {
	f := defaultFixture()
	f.clients.clientForFunc = func(botID uint) (domain.PlatformClient, error) {
		return &mockPlatformClient{
			sendMediaFunc: func(ctx context.Context, kind domain.MediaKind, chatID int64, fileID, caption string) error {
				return errBoom
			},
		}, nil
	}

	recorded := 0
	f.downloads.recordFunc = func(ctx context.Context, userID int64, fileID uint) error {
		recorded++
		return nil
	}

	result, err := newLedger(f).Deliver(context.Background(), 42, 42, 9, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeFailed {
		t.Fatalf("outcome = %v, want OutcomeFailed", result.Outcome)
	}
	if recorded != 0 {
		t.Errorf("a failed dispatch must not be recorded, got %d inserts", recorded)
	}
}

func TestDeliver_LedgerLookupFailureStillDelivers(t *testing.T) {
	f := defaultFixture()
	f.downloads.hasDownloadedFunc = func(ctx context.Context, userID int64, fileID uint) (bool, error) {
		return false, errBoom
	}

	result, err := newLedger(f).Deliver(context.Background(), 42, 42, 9, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != OutcomeDelivered {
		t.Errorf("outcome = %v, want OutcomeDelivered despite the advisory lookup failing", result.Outcome)
	}
}

func TestStoreArtifact(t *testing.T) {
	t.Run("rejects unsupported media kind", func(t *testing.T) {
		f := defaultFixture()
		err := newLedger(f).StoreArtifact(context.Background(), &domain.Artifact{
			BotID:    7,
			FileID:   "file-abc",
			FileType: domain.MediaKind("sticker"),
		})
		if err == nil {
			t.Fatal("expected an error for an unsupported media kind")
		}
	})

	t.Run("persists a valid artifact", func(t *testing.T) {
		f := defaultFixture()
		artifact := &domain.Artifact{BotID: 7, FileID: "file-abc", FileType: domain.MediaKindDocument}
		if err := newLedger(f).StoreArtifact(context.Background(), artifact); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if artifact.ID == 0 {
			t.Error("expected an assigned artifact id")
		}
	})
}
