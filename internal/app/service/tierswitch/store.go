package tierswitch

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

// Store is the persistence surface the tier-switch service depends on.
// Multi-write methods are atomic: either every write lands or none does.
type Store interface {
	SubscriptionByID(ctx context.Context, id string) (*models.Subscription, error)
	TierByID(ctx context.Context, id string) (*models.SubscriptionTier, error)
	PendingBySubscription(ctx context.Context, subscriptionID string) ([]*models.PendingSubscriptionChange, error)
	History(ctx context.Context, subscriptionID string, limit, offset int) ([]*models.SubscriptionChange, error)

	// CommitSwitch supersedes any pending rows for the subscription, saves the
	// updated subscription, and appends the audit row in one transaction.
	CommitSwitch(ctx context.Context, sub *models.Subscription, audit *models.SubscriptionChange) error

	// CreatePending cancels any prior pending row for the same subscription
	// and inserts the new one in one transaction.
	CreatePending(ctx context.Context, pending *models.PendingSubscriptionChange) error

	// CancelPending flips a pending row to cancelled. Returns
	// ErrPendingChangeNotFound when no row with the id is still pending.
	CancelPending(ctx context.Context, id string) error

	DuePending(ctx context.Context, now time.Time) ([]*models.PendingSubscriptionChange, error)

	// ApplyPending runs fn against the parent subscription and flips the row
	// to applied, all inside one transaction. Returns (false, nil) when the
	// row is no longer pending (already applied or superseded); on error
	// nothing is persisted and the row stays pending.
	ApplyPending(ctx context.Context, changeID string, fn func(sub *models.Subscription) (*models.SubscriptionChange, error)) (bool, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SubscriptionByID(ctx context.Context, id string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *gormStore) TierByID(ctx context.Context, id string) (*models.SubscriptionTier, error) {
	var tier models.SubscriptionTier
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	return &tier, nil
}

func (s *gormStore) PendingBySubscription(ctx context.Context, subscriptionID string) ([]*models.PendingSubscriptionChange, error) {
	var rows []*models.PendingSubscriptionChange
	err := s.db.WithContext(ctx).
		Where("subscription_id = ? AND status = ?", subscriptionID, types.PendingChangeStatusPending).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) History(ctx context.Context, subscriptionID string, limit, offset int) ([]*models.SubscriptionChange, error) {
	var rows []*models.SubscriptionChange
	err := s.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) CommitSwitch(ctx context.Context, sub *models.Subscription, audit *models.SubscriptionChange) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := supersedePending(tx, sub.ID); err != nil {
			return err
		}
		if err := tx.Save(sub).Error; err != nil {
			return err
		}
		return tx.Create(audit).Error
	})
}

func (s *gormStore) CreatePending(ctx context.Context, pending *models.PendingSubscriptionChange) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := supersedePending(tx, pending.SubscriptionID); err != nil {
			return err
		}
		return tx.Create(pending).Error
	})
}

func supersedePending(tx *gorm.DB, subscriptionID string) error {
	return tx.Model(&models.PendingSubscriptionChange{}).
		Where("subscription_id = ? AND status = ?", subscriptionID, types.PendingChangeStatusPending).
		Update("status", types.PendingChangeStatusCancelled).Error
}

func (s *gormStore) CancelPending(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Model(&models.PendingSubscriptionChange{}).
		Where("id = ? AND status = ?", id, types.PendingChangeStatusPending).
		Update("status", types.PendingChangeStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPendingChangeNotFound
	}
	return nil
}

func (s *gormStore) DuePending(ctx context.Context, now time.Time) ([]*models.PendingSubscriptionChange, error) {
	var rows []*models.PendingSubscriptionChange
	err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_date <= ?", types.PendingChangeStatusPending, now).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *gormStore) ApplyPending(ctx context.Context, changeID string, fn func(sub *models.Subscription) (*models.SubscriptionChange, error)) (bool, error) {
	applied := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.PendingSubscriptionChange
		err := tx.Where("id = ? AND status = ?", changeID, types.PendingChangeStatusPending).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var sub models.Subscription
		if err := tx.Where("id = ?", row.SubscriptionID).First(&sub).Error; err != nil {
			return err
		}

		audit, err := fn(&sub)
		if err != nil {
			return err
		}

		if err := tx.Save(&sub).Error; err != nil {
			return err
		}
		if err := tx.Create(audit).Error; err != nil {
			return err
		}
		if err := tx.Model(&row).Update("status", types.PendingChangeStatusApplied).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
