package models

import (
	"time"

	"github.com/tierhive/billing/pkg/types"
)

// ContentItem is a creator post; scheduled items are flipped to published by
// the content-publication job once scheduled_at passes.
type ContentItem struct {
	ID          string              `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CreatorID   string              `gorm:"column:creator_id;type:varchar(64);not null;index" json:"creator_id"`
	Title       string              `gorm:"column:title;type:varchar(256);not null" json:"title"`
	Status      types.ContentStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	ScheduledAt *time.Time          `gorm:"column:scheduled_at;default:null;index" json:"scheduled_at"`
	PublishedAt *time.Time          `gorm:"column:published_at;default:null" json:"published_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (ContentItem) TableName() string {
	return "content_item"
}
