package types

type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusCompleted PayoutStatus = "completed"
	PayoutStatusFailed    PayoutStatus = "failed"
)

// PayoutMethod identifies the external disbursement rail configured for a
// creator. Unknown values are a configuration error, never retried.
type PayoutMethod string

const (
	PayoutMethodMTNMoMo      PayoutMethod = "mtn_momo"
	PayoutMethodAirtelMoney  PayoutMethod = "airtel_money"
	PayoutMethodBankTransfer PayoutMethod = "bank_transfer"
)

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusScheduled ContentStatus = "scheduled"
	ContentStatusPublished ContentStatus = "published"
)
