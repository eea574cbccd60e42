package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tierhive/billing/pkg/types"
)

// PayoutAccount is a creator's disbursement configuration. Details holds the
// rail-specific fields (msisdn for mobile money, account/bank codes for bank
// transfer). A creator without an active account is skipped by settlement.
type PayoutAccount struct {
	ID        string             `gorm:"column:id;type:uuid;primary_key" json:"id"`
	CreatorID string             `gorm:"column:creator_id;type:varchar(64);not null;uniqueIndex" json:"creator_id"`
	Method    types.PayoutMethod `gorm:"column:method;type:varchar(32);not null" json:"method"`
	Details   datatypes.JSONMap  `gorm:"column:details;type:jsonb;default:'{}'" json:"details"`
	Active    bool               `gorm:"column:active;not null;default:true" json:"active"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (PayoutAccount) TableName() string {
	return "payout_account"
}

func (a *PayoutAccount) DetailString(key string) string {
	if a == nil || a.Details == nil {
		return ""
	}
	if v, ok := a.Details[key].(string); ok {
		return v
	}
	return ""
}
