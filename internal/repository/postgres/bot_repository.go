// Package postgres contains gorm implementations of the domain repositories
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// botRepository implements domain.BotRepository
type botRepository struct {
	db *gorm.DB
}

// NewBotRepository creates a new bot identity repository
func NewBotRepository(db *gorm.DB) domain.BotRepository {
	return &botRepository{
		db: db,
	}
}

// Create persists a new bot identity
func (r *botRepository) Create(ctx context.Context, bot *domain.BotIdentity) error {
	result := r.db.WithContext(ctx).Create(bot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrBotAlreadyExists
		}
		return domain.ErrDatabaseOperation
	}
	return nil
}

// GetByID retrieves a bot identity by its id
func (r *botRepository) GetByID(ctx context.Context, id uint) (*domain.BotIdentity, error) {
	var bot domain.BotIdentity
	result := r.db.WithContext(ctx).First(&bot, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBotNotFound
		}
		return nil, domain.ErrDatabaseOperation
	}
	return &bot, nil
}

// GetByToken retrieves a bot identity by its token
func (r *botRepository) GetByToken(ctx context.Context, token string) (*domain.BotIdentity, error) {
	var bot domain.BotIdentity
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&bot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBotNotFound
		}
		return nil, domain.ErrDatabaseOperation
	}
	return &bot, nil
}

// GetAll retrieves all bot identities, newest first
func (r *botRepository) GetAll(ctx context.Context) ([]domain.BotIdentity, error) {
	var bots []domain.BotIdentity
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&bots)
	if result.Error != nil {
		return nil, domain.ErrDatabaseOperation
	}
	return bots, nil
}

// Delete removes a bot identity
func (r *botRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.BotIdentity{}, id)
	if result.Error != nil {
		return domain.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return domain.ErrBotNotFound
	}
	return nil
}
