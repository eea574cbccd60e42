package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tierhive/billing/pkg/types"
)

// Subscription links a fan to one of a creator's tiers.
// At most one active subscription may exist per (fan, creator) pair; the
// composite index plus service-level checks enforce it.
type Subscription struct {
	ID        string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	FanID     string                   `gorm:"column:fan_id;type:varchar(64);not null;index:idx_fan_creator,priority:1" json:"fan_id"`
	CreatorID string                   `gorm:"column:creator_id;type:varchar(64);not null;index:idx_fan_creator,priority:2" json:"creator_id"`
	TierID    string                   `gorm:"column:tier_id;type:uuid;not null" json:"tier_id"`
	Status    types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	StartedAt time.Time                `gorm:"column:started_at;not null" json:"started_at"`
	// NextBillingDate is nil for subscriptions without a committed renewal date;
	// proration then assumes a full period remains.
	NextBillingDate *time.Time `gorm:"column:next_billing_date;default:null" json:"next_billing_date"`
	AutoRenew       bool       `gorm:"column:auto_renew;not null;default:true" json:"auto_renew"`
	// ProrationCredit is a non-negative balance owed to the fan, consumed by
	// future invoices. Deferred downgrades add to it when applied.
	ProrationCredit decimal.Decimal `gorm:"column:proration_credit;type:numeric(12,2);not null;default:0" json:"proration_credit"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

func (s *Subscription) IsActive() bool {
	return s != nil && s.Status == types.SubscriptionStatusActive
}
