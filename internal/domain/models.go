package domain

import (
	"time"
)

// ChannelType represents channel visibility
type ChannelType string

const (
	ChannelTypePublic  ChannelType = "public"
	ChannelTypePrivate ChannelType = "private"
)

// MediaKind represents the kind of a distributed file
type MediaKind string

const (
	MediaKindVideo    MediaKind = "video"
	MediaKindDocument MediaKind = "document"
	MediaKindPhoto    MediaKind = "photo"
	MediaKindAudio    MediaKind = "audio"
)

// Valid reports whether the kind is one of the supported media kinds
func (k MediaKind) Valid() bool {
	switch k {
	case MediaKindVideo, MediaKindDocument, MediaKindPhoto, MediaKindAudio:
		return true
	}
	return false
}

// MembershipStatus is the relationship of a user to a channel as reported
// by Telegram
type MembershipStatus string

const (
	MembershipOwner         MembershipStatus = "owner"
	MembershipAdministrator MembershipStatus = "administrator"
	MembershipMember        MembershipStatus = "member"
	MembershipRestricted    MembershipStatus = "restricted"
	MembershipLeft          MembershipStatus = "left"
	MembershipBanned        MembershipStatus = "banned"
	MembershipUnknown       MembershipStatus = "unknown"
)

// IsSubscribed reports whether the status counts as a full subscription
func (s MembershipStatus) IsSubscribed() bool {
	switch s {
	case MembershipMember, MembershipAdministrator, MembershipOwner:
		return true
	}
	return false
}

// CanManage reports whether the status grants channel management rights
func (s MembershipStatus) CanManage() bool {
	return s == MembershipAdministrator || s == MembershipOwner
}

// BotIdentity represents one distributing bot registered by the operator
type BotIdentity struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"not null"`
	Username  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for BotIdentity
func (BotIdentity) TableName() string {
	return "bots"
}

// Channel represents an externally hosted channel whose membership gates
// access to a bot's files
type Channel struct {
	ID         uint        `gorm:"primaryKey"`
	BotID      uint        `gorm:"not null;index:idx_bot_channel,unique"`
	ChannelID  string      `gorm:"not null;index:idx_bot_channel,unique"`
	Username   *string     `gorm:""`
	Title      string      `gorm:"not null"`
	Type       ChannelType `gorm:"not null"`
	InviteLink *string     `gorm:""`
	CreatedAt  time.Time   `gorm:"autoCreateTime"`
}

// TableName returns the table name for Channel
func (Channel) TableName() string {
	return "channels"
}

// Subscriber represents a Telegram user seen by any of the bots
type Subscriber struct {
	UserID      int64     `gorm:"primaryKey"`
	Username    string    `gorm:""`
	FirstName   string    `gorm:""`
	LastName    string    `gorm:""`
	FirstSeenAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for Subscriber
func (Subscriber) TableName() string {
	return "users"
}

// Artifact represents a distributable media object owned by one bot
type Artifact struct {
	ID        uint      `gorm:"primaryKey"`
	BotID     uint      `gorm:"not null;index"`
	FileID    string    `gorm:"not null"`
	FileType  MediaKind `gorm:"not null"`
	FileName  *string   `gorm:""`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for Artifact
func (Artifact) TableName() string {
	return "files"
}

// DownloadEvent represents one qualifying delivery of an artifact to a
// subscriber. The schema permits repeats; the ledger's write path inserts
// at most one row per (user, artifact) pair.
type DownloadEvent struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       int64     `gorm:"not null;index:idx_user_file"`
	FileID       uint      `gorm:"not null;index:idx_user_file"`
	DownloadedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for DownloadEvent
func (DownloadEvent) TableName() string {
	return "downloads"
}

// BotProfile is the identity resolved from a bot token
type BotProfile struct {
	UserID   int64
	Username string
}

// ChannelInfo is a channel descriptor resolved from a reference
type ChannelInfo struct {
	ChannelID string
	Username  string
	Title     string
}

// BotStats holds per-bot counters for the operator stats screen
type BotStats struct {
	Bot      BotIdentity
	Channels int64
	Files    int64
}

// Stats holds the aggregate counters for the operator stats screen
type Stats struct {
	TotalUsers     int64
	TotalDownloads int64
	Bots           []BotStats
}
