package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tierhive/billing/pkg/types"
)

// PendingSubscriptionChange is a deferred tier transition waiting for its
// scheduled date. At most one pending row exists per subscription: creating a
// new one supersedes (cancels) the prior pending row. Only the pending-change
// scheduler may move a row to applied.
type PendingSubscriptionChange struct {
	ID             string           `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string           `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscription_id"`
	FromTierID     string           `gorm:"column:from_tier_id;type:uuid;not null" json:"from_tier_id"`
	ToTierID       string           `gorm:"column:to_tier_id;type:uuid;not null" json:"to_tier_id"`
	ChangeType     types.ChangeType `gorm:"column:change_type;type:varchar(32);not null" json:"change_type"`
	ScheduledDate  time.Time        `gorm:"column:scheduled_date;not null;index" json:"scheduled_date"`
	// ProrationAmount is the credit owed to the fan when the change applies
	// (unused value of the current, pricier tier). Always >= 0.
	ProrationAmount decimal.Decimal           `gorm:"column:proration_amount;type:numeric(12,2);not null;default:0" json:"proration_amount"`
	Status          types.PendingChangeStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

func (PendingSubscriptionChange) TableName() string {
	return "pending_subscription_change"
}
