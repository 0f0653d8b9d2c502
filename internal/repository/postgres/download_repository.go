package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// downloadRepository implements domain.DownloadRepository
type downloadRepository struct {
	db *gorm.DB
}

// NewDownloadRepository creates a new download ledger repository
func NewDownloadRepository(db *gorm.DB) domain.DownloadRepository {
	return &downloadRepository{
		db: db,
	}
}

// Record inserts a download event
func (r *downloadRepository) Record(ctx context.Context, userID int64, fileID uint) error {
	event := &domain.DownloadEvent{
		UserID: userID,
		FileID: fileID,
	}
	result := r.db.WithContext(ctx).Create(event)
	if result.Error != nil {
		return domain.ErrDatabaseOperation
	}
	return nil
}

// HasDownloaded reports whether the pair already has a ledger row
func (r *downloadRepository) HasDownloaded(ctx context.Context, userID int64, fileID uint) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.DownloadEvent{}).
		Where("user_id = ? AND file_id = ?", userID, fileID).
		Count(&count)
	if result.Error != nil {
		return false, domain.ErrDatabaseOperation
	}
	return count > 0, nil
}

// Count returns the total number of download events
func (r *downloadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&domain.DownloadEvent{}).Count(&count)
	if result.Error != nil {
		return 0, domain.ErrDatabaseOperation
	}
	return count, nil
}
