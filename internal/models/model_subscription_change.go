package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/tierhive/billing/pkg/types"
)

// SubscriptionChange is the append-only audit log of every committed tier
// transition. Rows are never updated or deleted.
// Use case: troubleshooting and the fan-visible history endpoint.
type SubscriptionChange struct {
	ID              string              `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID  string              `gorm:"column:subscription_id;type:uuid;not null;index:idx_sub_id_id,priority:1" json:"subscription_id"`
	FromTierID      string              `gorm:"column:from_tier_id;type:uuid;not null" json:"from_tier_id"`
	ToTierID        string              `gorm:"column:to_tier_id;type:uuid;not null" json:"to_tier_id"`
	ChangeType      types.ChangeType    `gorm:"column:change_type;type:varchar(32);not null" json:"change_type"`
	ProrationAmount decimal.Decimal     `gorm:"column:proration_amount;type:numeric(12,2);not null;default:0" json:"proration_amount"`
	EffectiveDate   time.Time           `gorm:"column:effective_date;not null" json:"effective_date"`
	BillingImpact   types.BillingImpact `gorm:"column:billing_impact;type:varchar(32);not null" json:"billing_impact"`
	// Before/After store subscription snapshots around the change in JSON format.
	Before    datatypes.JSONType[*Subscription] `gorm:"column:before;type:jsonb;default:'null'" json:"before"`
	After     datatypes.JSONType[*Subscription] `gorm:"column:after;type:jsonb;default:'null'" json:"after"`
	CreatedAt time.Time                         `json:"created_at"`
}

func (SubscriptionChange) TableName() string {
	return "subscription_change"
}
