package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Conte777/MediaFlow/internal/domain"
)

// subscriberRepository implements domain.SubscriberRepository
type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *gorm.DB) domain.SubscriberRepository {
	return &subscriberRepository{
		db: db,
	}
}

// Upsert inserts the subscriber or refreshes its display fields. The
// first_seen_at timestamp of an existing row is left untouched.
func (r *subscriberRepository) Upsert(ctx context.Context, subscriber *domain.Subscriber) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name"}),
	}).Create(subscriber)
	if result.Error != nil {
		return domain.ErrDatabaseOperation
	}
	return nil
}

// Count returns the total number of subscribers
func (r *subscriberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&domain.Subscriber{}).Count(&count)
	if result.Error != nil {
		return 0, domain.ErrDatabaseOperation
	}
	return count, nil
}
