package payout

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

// Scan payout request/response, used by admin list pages.
type ScanPayoutsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanPayoutsResponse struct {
	Items []*models.CreatorPayout `json:"items"`
	Total int64                   `json:"total"`
}

// filtersAnd folds a filter list into one AND expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// ScanPayouts implements paginated/admin listing with filters.
func (s *gormStore) ScanPayouts(ctx context.Context, req *ScanPayoutsRequest) (*ScanPayoutsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.CreatorPayout{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count payouts: %w", err)
	}

	var rows []*models.CreatorPayout
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}

	return &ScanPayoutsResponse{Items: rows, Total: total}, nil
}
