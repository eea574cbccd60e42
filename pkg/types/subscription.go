package types

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// ChangeType classifies a subscription tier transition.
type ChangeType string

const (
	ChangeTypeUpgrade   ChangeType = "upgrade"
	ChangeTypeDowngrade ChangeType = "downgrade"
	ChangeTypeCancel    ChangeType = "cancel"
)

type PendingChangeStatus string

const (
	PendingChangeStatusPending   PendingChangeStatus = "pending"
	PendingChangeStatusApplied   PendingChangeStatus = "applied"
	PendingChangeStatusCancelled PendingChangeStatus = "cancelled"
)

// BillingImpact records when a committed change affects billing:
// immediately (mid-cycle upgrade) or at the next cycle boundary (deferred
// downgrade/cancel applied by the scheduler).
type BillingImpact string

const (
	BillingImpactImmediate BillingImpact = "immediate"
	BillingImpactNextCycle BillingImpact = "next_cycle"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)
