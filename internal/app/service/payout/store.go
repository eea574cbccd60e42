package payout

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

// Store is the persistence surface of the payout pipeline. Payout status
// transitions go through MarkCompleted/MarkFailed only; nothing else may
// touch creator_payout.status.
type Store interface {
	// EarningsFor sums completed transactions processed within the period for
	// subscriptions belonging to the creator.
	EarningsFor(ctx context.Context, creatorID string, start, end time.Time) (gross decimal.Decimal, count int64, err error)

	// CreatorsWithEarnings lists creators having at least one completed
	// transaction inside the period.
	CreatorsWithEarnings(ctx context.Context, start, end time.Time) ([]string, error)

	// AccountFor returns the creator's active payout account, or nil when the
	// creator has none configured.
	AccountFor(ctx context.Context, creatorID string) (*models.PayoutAccount, error)

	// PayoutForPeriod returns the existing payout row for (creator, period),
	// or nil when the period has not been settled.
	PayoutForPeriod(ctx context.Context, creatorID string, start, end time.Time) (*models.CreatorPayout, error)

	CreatePayout(ctx context.Context, payout *models.CreatorPayout) error
	MarkCompleted(ctx context.Context, id, externalTxID string, at time.Time) error
	MarkFailed(ctx context.Context, id, reason string) error

	// ScanPayouts is the admin listing query with filters and pagination.
	ScanPayouts(ctx context.Context, req *ScanPayoutsRequest) (*ScanPayoutsResponse, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) EarningsFor(ctx context.Context, creatorID string, start, end time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Gross decimal.Decimal
		Cnt   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Select("COALESCE(SUM(payment_transaction.amount), 0) AS gross, COUNT(*) AS cnt").
		Joins("JOIN subscription ON subscription.id = payment_transaction.subscription_id").
		Where("subscription.creator_id = ?", creatorID).
		Where("payment_transaction.status = ?", types.TransactionStatusCompleted).
		Where("payment_transaction.processed_at BETWEEN ? AND ?", start, end).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Gross, row.Cnt, nil
}

func (s *gormStore) CreatorsWithEarnings(ctx context.Context, start, end time.Time) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&models.PaymentTransaction{}).
		Distinct("subscription.creator_id").
		Joins("JOIN subscription ON subscription.id = payment_transaction.subscription_id").
		Where("payment_transaction.status = ?", types.TransactionStatusCompleted).
		Where("payment_transaction.processed_at BETWEEN ? AND ?", start, end).
		Pluck("subscription.creator_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *gormStore) AccountFor(ctx context.Context, creatorID string) (*models.PayoutAccount, error) {
	var account models.PayoutAccount
	err := s.db.WithContext(ctx).
		Where("creator_id = ? AND active = ?", creatorID, true).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *gormStore) PayoutForPeriod(ctx context.Context, creatorID string, start, end time.Time) (*models.CreatorPayout, error) {
	var payout models.CreatorPayout
	err := s.db.WithContext(ctx).
		Where("creator_id = ? AND period_start = ? AND period_end = ?", creatorID, start, end).
		First(&payout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payout, nil
}

func (s *gormStore) CreatePayout(ctx context.Context, payout *models.CreatorPayout) error {
	return s.db.WithContext(ctx).Create(payout).Error
}

func (s *gormStore) MarkCompleted(ctx context.Context, id, externalTxID string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.CreatorPayout{}).
		Where("id = ? AND status = ?", id, types.PayoutStatusPending).
		Updates(map[string]any{
			"status":         types.PayoutStatusCompleted,
			"transaction_id": externalTxID,
			"processed_at":   at,
		}).Error
}

func (s *gormStore) MarkFailed(ctx context.Context, id, reason string) error {
	return s.db.WithContext(ctx).
		Model(&models.CreatorPayout{}).
		Where("id = ? AND status = ?", id, types.PayoutStatusPending).
		Updates(map[string]any{
			"status":         types.PayoutStatusFailed,
			"failure_reason": reason,
		}).Error
}
