package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Conte777/MediaFlow/internal/domain"
)

func testChannels() []domain.Channel {
	public := "publicchan"
	return []domain.Channel{
		{ID: 1, BotID: 7, ChannelID: "-100100", Title: "Public", Type: domain.ChannelTypePublic, Username: &public},
		{ID: 2, BotID: 7, ChannelID: "-100200", Title: "Private", Type: domain.ChannelTypePrivate},
	}
}

func newVerifier(channels domain.ChannelRepository, clients domain.ClientProvider) *VerifierUseCase {
	return NewVerifierUseCase(channels, clients, newTestMetrics(), testLogger())
}

func TestVerify_NoChannels(t *testing.T) {
	verifier := newVerifier(&mockChannelRepository{}, &mockClientProvider{})

	ok, unmet, err := verifier.Verify(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected a bot without channels to qualify trivially")
	}
	if len(unmet) != 0 {
		t.Errorf("expected no unmet channels, got %d", len(unmet))
	}
}

func TestVerify_StoreError(t *testing.T) {
	channels := &mockChannelRepository{
		getByBotIDFunc: func(ctx context.Context, botID uint) ([]domain.Channel, error) {
			return nil, errBoom
		},
	}
	verifier := newVerifier(channels, &mockClientProvider{})

	ok, _, err := verifier.Verify(context.Background(), 42, 7)
	if err == nil {
		t.Fatal("expected a store error to surface")
	}
	if ok {
		t.Error("expected a failed verification on store error")
	}
}

func TestVerify_OwnerBotUnavailable(t *testing.T) {
	channels := &mockChannelRepository{
		getByBotIDFunc: func(ctx context.Context, botID uint) ([]domain.Channel, error) {
			return testChannels(), nil
		},
	}
	clients := &mockClientProvider{
		clientForFunc: func(botID uint) (domain.PlatformClient, error) {
			return nil, errBoom
		},
	}
	verifier := newVerifier(channels, clients)

	ok, unmet, err := verifier.Verify(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected failing closed when the owner bot has no client")
	}
	if len(unmet) != 2 {
		t.Errorf("expected every channel unmet, got %d", len(unmet))
	}
}

func TestVerify_MembershipRules(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.MembershipStatus
		private bool
		want    bool
	}{
		{"member qualifies", domain.MembershipMember, false, true},
		{"administrator qualifies", domain.MembershipAdministrator, false, true},
		{"owner qualifies", domain.MembershipOwner, false, true},
		{"left does not qualify", domain.MembershipLeft, false, false},
		{"banned does not qualify", domain.MembershipBanned, false, false},
		{"restricted fails for public", domain.MembershipRestricted, false, false},
		{"restricted passes for private", domain.MembershipRestricted, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channel := domain.Channel{ID: 1, BotID: 7, ChannelID: "-100100", Type: domain.ChannelTypePublic}
			if tt.private {
				channel.Type = domain.ChannelTypePrivate
			}

			channels := &mockChannelRepository{
				getByBotIDFunc: func(ctx context.Context, botID uint) ([]domain.Channel, error) {
					return []domain.Channel{channel}, nil
				},
			}
			clients := &mockClientProvider{
				clientForFunc: func(botID uint) (domain.PlatformClient, error) {
					return &mockPlatformClient{
						getMembershipFunc: func(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error) {
							return tt.status, nil
						},
					}, nil
				},
			}

			ok, unmet, err := newVerifier(channels, clients).Verify(context.Background(), 42, 7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.want {
				t.Errorf("qualified = %v, want %v", ok, tt.want)
			}
			if !tt.want && len(unmet) != 1 {
				t.Errorf("expected the channel in the unmet list, got %d entries", len(unmet))
			}
		})
	}
}

func TestVerify_OracleFailureFailsClosed(t *testing.T) {
	channels := &mockChannelRepository{
		getByBotIDFunc: func(ctx context.Context, botID uint) ([]domain.Channel, error) {
			return testChannels(), nil
		},
	}
	clients := &mockClientProvider{
		clientForFunc: func(botID uint) (domain.PlatformClient, error) {
			return &mockPlatformClient{
				getMembershipFunc: func(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error) {
					if channelID == "-100200" {
						return domain.MembershipUnknown, errBoom
					}
					return domain.MembershipMember, nil
				},
			}, nil
		},
	}

	ok, unmet, err := newVerifier(channels, clients).Verify(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected a lookup failure to gate the subscriber")
	}
	if len(unmet) != 1 || unmet[0].ChannelID != "-100200" {
		t.Errorf("expected only the failing channel unmet, got %+v", unmet)
	}
}

func TestVerify_UnmetKeepsStoredOrder(t *testing.T) {
	stored := []domain.Channel{
		{ID: 1, ChannelID: "-1"},
		{ID: 2, ChannelID: "-2"},
		{ID: 3, ChannelID: "-3"},
		{ID: 4, ChannelID: "-4"},
	}
	channels := &mockChannelRepository{
		getByBotIDFunc: func(ctx context.Context, botID uint) ([]domain.Channel, error) {
			return stored, nil
		},
	}
	// earlier channels answer slower, so completion order inverts the
	// stored order; the unmet list must not care
	clients := &mockClientProvider{
		clientForFunc: func(botID uint) (domain.PlatformClient, error) {
			return &mockPlatformClient{
				getMembershipFunc: func(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error) {
					switch channelID {
					case "-1":
						time.Sleep(30 * time.Millisecond)
					case "-2":
						time.Sleep(20 * time.Millisecond)
					case "-3":
						time.Sleep(10 * time.Millisecond)
					}
					return domain.MembershipLeft, nil
				},
			}, nil
		},
	}

	ok, unmet, err := newVerifier(channels, clients).Verify(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected the subscriber to be gated")
	}
	if len(unmet) != 4 {
		t.Fatalf("expected 4 unmet channels, got %d", len(unmet))
	}
	for i, ch := range unmet {
		if ch.ID != stored[i].ID {
			t.Errorf("unmet[%d].ID = %d, want %d", i, ch.ID, stored[i].ID)
		}
	}
}
