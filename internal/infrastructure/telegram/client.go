// Package telegram contains Telegram bot infrastructure
package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// requestTimeout bounds every outbound Bot API call; an expired call is
// surfaced as an error and the caller fails closed
const requestTimeout = 30 * time.Second

// Client implements domain.PlatformClient on top of one bot identity's
// Bot API connection
type Client struct {
	bot    *tgbot.Bot
	logger zerolog.Logger

	selfMu sync.Mutex
	selfID int64
}

// NewClient creates a platform client backed by the given bot
func NewClient(b *tgbot.Bot, logger zerolog.Logger) *Client {
	return &Client{
		bot:    b,
		logger: logger,
	}
}

// ResolveIdentity validates a candidate bot token by asking the platform
// who it belongs to. The probe connection is discarded afterwards.
func (c *Client) ResolveIdentity(ctx context.Context, token string) (*domain.BotProfile, error) {
	probe, err := tgbot.New(token, tgbot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create probe bot: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	me, err := probe.GetMe(callCtx)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	return &domain.BotProfile{
		UserID:   me.ID,
		Username: me.Username,
	}, nil
}

// ResolveChannel resolves a channel reference (@handle or numeric id) to a
// channel descriptor
func (c *Client) ResolveChannel(ctx context.Context, ref string) (*domain.ChannelInfo, error) {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	chat, err := c.bot.GetChat(callCtx, &tgbot.GetChatParams{ChatID: ref})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve channel %q: %w", ref, err)
	}

	return &domain.ChannelInfo{
		ChannelID: fmt.Sprintf("%d", chat.ID),
		Username:  chat.Username,
		Title:     chat.Title,
	}, nil
}

// GetMembership returns the membership status of a user in a channel
func (c *Client) GetMembership(ctx context.Context, channelID string, userID int64) (domain.MembershipStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	member, err := c.bot.GetChatMember(callCtx, &tgbot.GetChatMemberParams{
		ChatID: channelID,
		UserID: userID,
	})
	if err != nil {
		return domain.MembershipUnknown, fmt.Errorf("failed to get membership in %s: %w", channelID, err)
	}

	return mapMemberStatus(member), nil
}

// GetOwnMembership returns the bot's own membership status in a channel
func (c *Client) GetOwnMembership(ctx context.Context, channelID string) (domain.MembershipStatus, error) {
	selfID, err := c.self(ctx)
	if err != nil {
		return domain.MembershipUnknown, err
	}
	return c.GetMembership(ctx, channelID, selfID)
}

// self resolves the bot's own user id, caching it after the first success
func (c *Client) self(ctx context.Context) (int64, error) {
	c.selfMu.Lock()
	defer c.selfMu.Unlock()

	if c.selfID != 0 {
		return c.selfID, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	me, err := c.bot.GetMe(callCtx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve own identity: %w", err)
	}
	c.selfID = me.ID
	return c.selfID, nil
}

// ExportInviteLink fetches an invite link for a channel
func (c *Client) ExportInviteLink(ctx context.Context, channelID string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	link, err := c.bot.ExportChatInviteLink(callCtx, &tgbot.ExportChatInviteLinkParams{
		ChatID: channelID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export invite link for %s: %w", channelID, err)
	}

	return link, nil
}

// SendMedia dispatches a stored file to a chat by its kind
func (c *Client) SendMedia(ctx context.Context, kind domain.MediaKind, chatID int64, fileID, caption string) error {
	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload := &models.InputFileString{Data: fileID}

	var err error
	switch kind {
	case domain.MediaKindVideo:
		_, err = c.bot.SendVideo(callCtx, &tgbot.SendVideoParams{
			ChatID:  chatID,
			Video:   payload,
			Caption: caption,
		})
	case domain.MediaKindDocument:
		_, err = c.bot.SendDocument(callCtx, &tgbot.SendDocumentParams{
			ChatID:   chatID,
			Document: payload,
			Caption:  caption,
		})
	case domain.MediaKindPhoto:
		_, err = c.bot.SendPhoto(callCtx, &tgbot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   payload,
			Caption: caption,
		})
	case domain.MediaKindAudio:
		_, err = c.bot.SendAudio(callCtx, &tgbot.SendAudioParams{
			ChatID:  chatID,
			Audio:   payload,
			Caption: caption,
		})
	default:
		return fmt.Errorf("unsupported media kind %q", kind)
	}

	if err != nil {
		return fmt.Errorf("failed to send %s to chat %d: %w", kind, chatID, err)
	}

	return nil
}

// mapMemberStatus maps a Telegram chat member to the domain status
func mapMemberStatus(member *models.ChatMember) domain.MembershipStatus {
	switch member.Type {
	case models.ChatMemberTypeOwner:
		return domain.MembershipOwner
	case models.ChatMemberTypeAdministrator:
		return domain.MembershipAdministrator
	case models.ChatMemberTypeMember:
		return domain.MembershipMember
	case models.ChatMemberTypeRestricted:
		return domain.MembershipRestricted
	case models.ChatMemberTypeLeft:
		return domain.MembershipLeft
	case models.ChatMemberTypeBanned:
		return domain.MembershipBanned
	default:
		return domain.MembershipUnknown
	}
}
