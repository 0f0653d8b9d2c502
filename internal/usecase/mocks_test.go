package usecase

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
	"github.com/Conte777/MediaFlow/internal/infrastructure/metrics"
)

// newTestMetrics returns metrics bound to a throwaway registry
func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetricsWith(prometheus.NewRegistry())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// mockBotRepository is a mock implementation of domain.BotRepository
type mockBotRepository struct {
	createFunc func(ctx context.Context, bot *domain.BotIdentity) error
	getAllFunc func(ctx context.Context) ([]domain.BotIdentity, error)
}

func (m *mockBotRepository) Create(ctx context.Context, bot *domain.BotIdentity) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, bot)
	}
	bot.ID = 1
	return nil
}

func (m *mockBotRepository) GetByID(ctx context.Context, id uint) (*domain.BotIdentity, error) {
	return nil, domain.ErrBotNotFound
}

func (m *mockBotRepository) GetByToken(ctx context.Context, token string) (*domain.BotIdentity, error) {
	return nil, domain.ErrBotNotFound
}

func (m *mockBotRepository) GetAll(ctx context.Context) ([]domain.BotIdentity, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockBotRepository) Delete(ctx context.Context, id uint) error {
	return nil
}

// mockChannelRepository is a mock implementation of domain.ChannelRepository
type mockChannelRepository struct {
	registerFunc     func(ctx context.Context, channel *domain.Channel) (bool, error)
	getByBotIDFunc   func(ctx context.Context, botID uint) ([]domain.Channel, error)
	countByBotIDFunc func(ctx context.Context, botID uint) (int64, error)
}

func (m *mockChannelRepository) Register(ctx context.Context, channel *domain.Channel) (bool, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, channel)
	}
	return true, nil
}

func (m *mockChannelRepository) GetByBotID(ctx context.Context, botID uint) ([]domain.Channel, error) {
	if m.getByBotIDFunc != nil {
		return m.getByBotIDFunc(ctx, botID)
	}
	return nil, nil
}

func (m *mockChannelRepository) GetByID(ctx context.Context, id uint) (*domain.Channel, error) {
	return nil, domain.ErrChannelNotFound
}

func (m *mockChannelRepository) Delete(ctx context.Context, botID uint, channelID string) (bool, error) {
	return true, nil
}

func (m *mockChannelRepository) CountByBotID(ctx context.Context, botID uint) (int64, error) {
	if m.countByBotIDFunc != nil {
		return m.countByBotIDFunc(ctx, botID)
	}
	return 0, nil
}

// mockSubscriberRepository is a mock implementation of domain.SubscriberRepository
type mockSubscriberRepository struct {
	upsertFunc func(ctx context.Context, subscriber *domain.Subscriber) error
	countFunc  func(ctx context.Context) (int64, error)
}

func (m *mockSubscriberRepository) Upsert(ctx context.Context, subscriber *domain.Subscriber) error {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, subscriber)
	}
	return nil
}

func (m *mockSubscriberRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

// mockArtifactRepository is a mock implementation of domain.ArtifactRepository
type mockArtifactRepository struct {
	createFunc       func(ctx context.Context, artifact *domain.Artifact) error
	getByIDFunc      func(ctx context.Context, id uint) (*domain.Artifact, error)
	countByBotIDFunc func(ctx context.Context, botID uint) (int64, error)
}

func (m *mockArtifactRepository) Create(ctx context.Context, artifact *domain.Artifact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, artifact)
	}
	artifact.ID = 1
	return nil
}

func (m *mockArtifactRepository) GetByID(ctx context.Context, id uint) (*domain.Artifact, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrArtifactNotFound
}

func (m *mockArtifactRepository) CountByBotID(ctx context.Context, botID uint) (int64, error) {
	if m.countByBotIDFunc != nil {
		return m.countByBotIDFunc(ctx, botID)
	}
	return 0, nil
}

// mockDownloadRepository is a mock implementation of domain.DownloadRepository
type mockDownloadRepository struct {
	recordFunc        func(ctx context.Context, userID int64, fileID uint) error
	hasDownloadedFunc func(ctx context.Context, userID int64, fileID uint) (bool, error)
}

func (m *mockDownloadRepository) Record(ctx context.Context, userID int64, fileID uint) error {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, userID, fileID)
	}
	return nil
}

func (m *mockDownloadRepository) HasDownloaded(ctx context.Context, userID int64, fileID uint) (bool, error) {
	if m.hasDownloadedFunc != nil {
		return m.hasDownloadedFunc(ctx, userID, fileID)
	}
	return false, nil
}

func (m *mockDownloadRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

// mockPlatformClient is a mock implementation of domain.PlatformClient
type mockPlatformClient struct {
	resolveIdentityFunc  func(ctx context.Context, token string) (*domain.BotProfile, error)
	resolveChannelFunc   func(ctx context.Context, ref string) (*domain.ChannelInfo, error)
	getMembershipFunc    func(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error)
	getOwnMembershipFunc func(ctx context.Context, channelID string) (domain.MembershipStatus, error)
	exportInviteFunc     func(ctx context.Context, channelID string) (string, error)
	sendMediaFunc        func(ctx context.Context, kind domain.MediaKind, chatID int64, fileID, caption string) error
}

func (m *mockPlatformClient) ResolveIdentity(ctx context.Context, token string) (*domain.BotProfile, error) {
	if m.resolveIdentityFunc != nil {
		return m.resolveIdentityFunc(ctx, token)
	}
	return &domain.BotProfile{UserID: 100, Username: "test_bot"}, nil
}

func (m *mockPlatformClient) ResolveChannel(ctx context.Context, ref string) (*domain.ChannelInfo, error) {
	if m.resolveChannelFunc != nil {
		return m.resolveChannelFunc(ctx, ref)
	}
	return &domain.ChannelInfo{ChannelID: "-100200", Title: "Test Channel", Username: "testchannel"}, nil
}

func (m *mockPlatformClient) GetMembership(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error) {
	if m.getMembershipFunc != nil {
		return m.getMembershipFunc(ctx, channelID, userID)
	}
	return domain.MembershipMember, nil
}

func (m *mockPlatformClient) GetOwnMembership(ctx context.Context, channelID string) (domain.MembershipStatus, error) {
	if m.getOwnMembershipFunc != nil {
		return m.getOwnMembershipFunc(ctx, channelID)
	}
	return domain.MembershipAdministrator, nil
}

func (m *mockPlatformClient) ExportInviteLink(ctx context.Context, channelID string) (string, error) {
	if m.exportInviteFunc != nil {
		return m.exportInviteFunc(ctx, channelID)
	}
	return "https://t.me/+invite", nil
}

func (m *mockPlatformClient) SendMedia(ctx context.Context, kind domain.MediaKind, chatID int64, fileID, caption string) error {
	if m.sendMediaFunc != nil {
		return m.sendMediaFunc(ctx, kind, chatID, fileID, caption)
	}
	return nil
}

// mockClientProvider is a mock implementation of domain.ClientProvider
type mockClientProvider struct {
	clientForFunc func(botID uint) (domain.PlatformClient, error)
}

func (m *mockClientProvider) ClientFor(botID uint) (domain.PlatformClient, error) {
	if m.clientForFunc != nil {
		return m.clientForFunc(botID)
	}
	return &mockPlatformClient{}, nil
}

// mockLauncher is a mock implementation of domain.BotLauncher
type mockLauncher struct {
	launchFunc func(bot *domain.BotIdentity) error
}

func (m *mockLauncher) Launch(bot *domain.BotIdentity) error {
	if m.launchFunc != nil {
		return m.launchFunc(bot)
	}
	return nil
}

var errBoom = errors.New("boom")
