package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tierhive/billing/pkg/types"
)

// PaymentTransaction records money collected for a subscription period.
// Only completed rows with processed_at inside a payout period count toward
// creator earnings.
type PaymentTransaction struct {
	ID             string                  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	SubscriptionID string                  `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscription_id"`
	Amount         decimal.Decimal         `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Currency       string                  `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	Status         types.TransactionStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	ProcessedAt    *time.Time              `gorm:"column:processed_at;default:null;index" json:"processed_at"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transaction"
}
