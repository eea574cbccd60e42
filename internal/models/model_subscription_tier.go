package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionTier is a creator-defined price/benefit level.
// Price is immutable once an active subscription references the tier; price
// changes are modeled as new tier rows applying to future periods.
type SubscriptionTier struct {
	ID        string          `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CreatorID string          `gorm:"column:creator_id;type:varchar(64);not null;index" json:"creator_id"`
	Name      string          `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Currency  string          `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Active    bool            `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (SubscriptionTier) TableName() string {
	return "subscription_tier"
}
