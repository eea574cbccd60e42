package publication

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

// Store is the persistence surface the publication service depends on.
type Store interface {
	DueScheduled(ctx context.Context, now time.Time) ([]*models.ContentItem, error)

	// Publish flips a scheduled item to published and stamps published_at.
	// Returns (false, nil) when the item is no longer scheduled, so a
	// concurrent publish never double-counts.
	Publish(ctx context.Context, itemID string, publishedAt time.Time) (bool, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DueScheduled(ctx context.Context, now time.Time) ([]*models.ContentItem, error) {
	var rows []*models.ContentItem
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", types.ContentStatusScheduled, now).
		Order("scheduled_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) Publish(ctx context.Context, itemID string, publishedAt time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.ContentItem{}).
		Where("id = ? AND status = ?", itemID, types.ContentStatusScheduled).
		Updates(map[string]any{
			"status":       types.ContentStatusPublished,
			"published_at": publishedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
