package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tierhive/billing/pkg/types"
)

// CreatorPayout is one settlement attempt for a creator and period.
// The primary key is derived deterministically from (creator_id, period) and a
// unique index backs it, so re-running settlement for an already-settled
// period cannot double-pay. Lifecycle: pending -> completed | failed; no
// transition out of completed/failed within this engine.
type CreatorPayout struct {
	ID          string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CreatorID   string             `gorm:"column:creator_id;type:varchar(64);not null;uniqueIndex:unique_creator_period,priority:1" json:"creator_id"`
	Amount      decimal.Decimal    `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Currency    string             `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Status      types.PayoutStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	PeriodStart time.Time          `gorm:"column:period_start;not null;uniqueIndex:unique_creator_period,priority:2" json:"period_start"`
	PeriodEnd   time.Time          `gorm:"column:period_end;not null;uniqueIndex:unique_creator_period,priority:3" json:"period_end"`
	Method      types.PayoutMethod `gorm:"column:payout_method;type:varchar(32);not null" json:"payout_method"`
	// TransactionID is the external provider reference, set only on completed.
	TransactionID *string    `gorm:"column:transaction_id;type:varchar(128);default:null" json:"transaction_id"`
	ProcessedAt   *time.Time `gorm:"column:processed_at;default:null" json:"processed_at"`
	FailureReason *string    `gorm:"column:failure_reason;type:varchar(256);default:null" json:"failure_reason"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (CreatorPayout) TableName() string {
	return "creator_payout"
}
