package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// channelRepository implements domain.ChannelRepository
type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *gorm.DB) domain.ChannelRepository {
	return &channelRepository{
		db: db,
	}
}

// Register persists a channel. The (bot_id, channel_id) uniqueness is
// enforced by the database constraint, so two concurrent registrations of
// the same pair cannot race past the check; the loser gets (false, nil).
func (r *channelRepository) Register(ctx context.Context, channel *domain.Channel) (bool, error) {
	result := r.db.WithContext(ctx).Create(channel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, domain.ErrDatabaseOperation
	}
	return true, nil
}

// GetByBotID retrieves all channels gating a bot, newest first
func (r *channelRepository) GetByBotID(ctx context.Context, botID uint) ([]domain.Channel, error) {
	var channels []domain.Channel
	result := r.db.WithContext(ctx).
		Where("bot_id = ?", botID).
		Order("created_at DESC").
		Find(&channels)
	if result.Error != nil {
		return nil, domain.ErrDatabaseOperation
	}
	return channels, nil
}

// GetByID retrieves a single channel by its row id
func (r *channelRepository) GetByID(ctx context.Context, id uint) (*domain.Channel, error) {
	var channel domain.Channel
	result := r.db.WithContext(ctx).First(&channel, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrChannelNotFound
		}
		return nil, domain.ErrDatabaseOperation
	}
	return &channel, nil
}

// Delete removes a channel registration
func (r *channelRepository) Delete(ctx context.Context, botID uint, channelID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("bot_id = ? AND channel_id = ?", botID, channelID).
		Delete(&domain.Channel{})
	if result.Error != nil {
		return false, domain.ErrDatabaseOperation
	}
	return result.RowsAffected > 0, nil
}

// CountByBotID returns the number of channels gating a bot
func (r *channelRepository) CountByBotID(ctx context.Context, botID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.Channel{}).
		Where("bot_id = ?", botID).
		Count(&count)
	if result.Error != nil {
		return 0, domain.ErrDatabaseOperation
	}
	return count, nil
}
