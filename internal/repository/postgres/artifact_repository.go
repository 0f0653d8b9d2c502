package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// artifactRepository implements domain.ArtifactRepository
type artifactRepository struct {
	db *gorm.DB
}

// NewArtifactRepository creates a new artifact repository
func NewArtifactRepository(db *gorm.DB) domain.ArtifactRepository {
	return &artifactRepository{
		db: db,
	}
}

// Create persists a new artifact
func (r *artifactRepository) Create(ctx context.Context, artifact *domain.Artifact) error {
	result := r.db.WithContext(ctx).Create(artifact)
	if result.Error != nil {
		return domain.ErrDatabaseOperation
	}
	return nil
}

// GetByID retrieves an artifact by its id
func (r *artifactRepository) GetByID(ctx context.Context, id uint) (*domain.Artifact, error) {
	var artifact domain.Artifact
	result := r.db.WithContext(ctx).First(&artifact, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrArtifactNotFound
		}
		return nil, domain.ErrDatabaseOperation
	}
	return &artifact, nil
}

// CountByBotID returns the number of artifacts owned by a bot
func (r *artifactRepository) CountByBotID(ctx context.Context, botID uint) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.Artifact{}).
		Where("bot_id = ?", botID).
		Count(&count)
	if result.Error != nil {
		return 0, domain.ErrDatabaseOperation
	}
	return count, nil
}
