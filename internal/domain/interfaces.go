package domain

import "context"

// BotRepository defines the interface for bot identity data access
type BotRepository interface {
	// Create persists a new bot identity
	Create(ctx context.Context, bot *BotIdentity) error

	// GetByID retrieves a bot identity by its id
	GetByID(ctx context.Context, id uint) (*BotIdentity, error)

	// GetByToken retrieves a bot identity by its token
	GetByToken(ctx context.Context, token string) (*BotIdentity, error)

	// GetAll retrieves all bot identities, newest first
	GetAll(ctx context.Context) ([]BotIdentity, error)

	// Delete removes a bot identity
	Delete(ctx context.Context, id uint) error
}

// ChannelRepository defines the interface for gating channel data access
type ChannelRepository interface {
	// Register persists a channel. It returns false without an error when
	// the (bot_id, channel_id) pair is already registered; the uniqueness
	// check is enforced by the database, not by the application.
	Register(ctx context.Context, channel *Channel) (bool, error)

	// GetByBotID retrieves all channels gating a bot, newest first
	GetByBotID(ctx context.Context, botID uint) ([]Channel, error)

	// GetByID retrieves a single channel by its row id
	GetByID(ctx context.Context, id uint) (*Channel, error)

	// Delete removes a channel registration
	Delete(ctx context.Context, botID uint, channelID string) (bool, error)

	// CountByBotID returns the number of channels gating a bot
	CountByBotID(ctx context.Context, botID uint) (int64, error)
}

// SubscriberRepository defines the interface for subscriber data access
type SubscriberRepository interface {
	// Upsert inserts the subscriber or refreshes its display fields.
	// Calling it twice with the same user id never duplicates the row.
	Upsert(ctx context.Context, subscriber *Subscriber) error

	// Count returns the total number of subscribers
	Count(ctx context.Context) (int64, error)
}

// ArtifactRepository defines the interface for artifact data access
type ArtifactRepository interface {
	// Create persists a new artifact
	Create(ctx context.Context, artifact *Artifact) error

	// GetByID retrieves an artifact; returns ErrArtifactNotFound if absent
	GetByID(ctx context.Context, id uint) (*Artifact, error)

	// CountByBotID returns the number of artifacts owned by a bot
	CountByBotID(ctx context.Context, botID uint) (int64, error)
}

// DownloadRepository defines the interface for the download ledger
type DownloadRepository interface {
	// Record inserts a download event. It always inserts; callers check
	// HasDownloaded first when once-only semantics are wanted.
	Record(ctx context.Context, userID int64, fileID uint) error

	// HasDownloaded reports whether the pair already has a ledger row
	HasDownloaded(ctx context.Context, userID int64, fileID uint) (bool, error)

	// Count returns the total number of download events
	Count(ctx context.Context) (int64, error)
}

// PlatformClient defines the capability surface of the Telegram platform
// used by the core. Implementations carry a bounded per-call timeout; a
// returned error means the caller must fail closed.
type PlatformClient interface {
	// ResolveIdentity validates a bot token against the platform and
	// returns the bot's own profile
	ResolveIdentity(ctx context.Context, token string) (*BotProfile, error)

	// ResolveChannel resolves a channel reference (@handle or numeric id)
	// to a channel descriptor
	ResolveChannel(ctx context.Context, ref string) (*ChannelInfo, error)

	// GetMembership returns the membership status of a user in a channel
	GetMembership(ctx context.Context, channelID string, userID int64) (MembershipStatus, error)

	// GetOwnMembership returns the bot's own membership status in a channel
	GetOwnMembership(ctx context.Context, channelID string) (MembershipStatus, error)

	// ExportInviteLink fetches an invite link for a channel
	ExportInviteLink(ctx context.Context, channelID string) (string, error)

	// SendMedia dispatches a stored file to a chat by its kind
	SendMedia(ctx context.Context, kind MediaKind, chatID int64, fileID, caption string) error
}

// ClientProvider hands out the platform client backed by a specific bot
// identity's connection. Membership checks and media dispatch must go
// through the bot that owns the channels and files in question.
type ClientProvider interface {
	// ClientFor returns the platform client for the given bot identity
	ClientFor(botID uint) (PlatformClient, error)
}

// BotLauncher starts an inbound-update loop for a freshly registered bot
// identity without a process restart
type BotLauncher interface {
	// Launch starts the consumption loop for the given identity
	Launch(bot *BotIdentity) error
}
