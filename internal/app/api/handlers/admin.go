package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/tierhive/billing/internal/app/scheduler"
	"github.com/tierhive/billing/internal/app/service/payout"
	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/config"
	"github.com/tierhive/billing/pkg/response"
	"github.com/tierhive/billing/pkg/types"
)

type ProcessMonthlyPayoutsRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// @Summary      Process Monthly Payouts (Admin)
// @Description  Settles creator payouts for a calendar month. Without a body the previous month is settled. Safe to re-run; already-settled creators are skipped.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body handlers.ProcessMonthlyPayoutsRequest false "Explicit settlement month (defaults to the previous month)"
// @Success      200  {object}  handlers.RespRunReport
// @Router       /api/v1/admin/payouts/process-monthly [post]
func ApiProcessMonthlyPayouts(job *payout.SettlementJob, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProcessMonthlyPayoutsRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
		}

		var (
			report *payout.RunReport
			err    error
		)
		switch {
		case req.Year == 0 && req.Month == 0:
			report, err = job.SettlePreviousMonth(c.Request.Context())
		case req.Month < 1 || req.Month > 12 || req.Year < 2000:
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "year and month must name a calendar month"))
			return
		default:
			loc, locErr := time.LoadLocation(cfg.Scheduler.Timezone)
			if locErr != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, locErr.Error()))
				return
			}
			start, end := payout.MonthPeriod(req.Year, time.Month(req.Month), loc)
			report, err = job.SettlePeriod(c.Request.Context(), start, end)
		}
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(report))
	}
}

// PayoutItem is the admin list view of a payout row.
type PayoutItem struct {
	ID            string             `json:"id"`
	CreatorID     string             `json:"creator_id"`
	Amount        decimal.Decimal    `json:"amount"`
	Currency      string             `json:"currency"`
	Status        types.PayoutStatus `json:"status"`
	PeriodStart   time.Time          `json:"period_start"`
	PeriodEnd     time.Time          `json:"period_end"`
	Method        types.PayoutMethod `json:"payout_method"`
	TransactionID *string            `json:"transaction_id"`
	ProcessedAt   *time.Time         `json:"processed_at"`
	FailureReason *string            `json:"failure_reason"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toPayoutItem(m *models.CreatorPayout) *PayoutItem {
	return &PayoutItem{
		ID:            m.ID,
		CreatorID:     m.CreatorID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        m.Status,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		Method:        m.Method,
		TransactionID: m.TransactionID,
		ProcessedAt:   m.ProcessedAt,
		FailureReason: m.FailureReason,
		CreatedAt:     m.CreatedAt,
	}
}

type ListPayoutsResponse struct {
	Items []*PayoutItem `json:"items"`
	Total int64         `json:"total"`
}

// @Summary      List Creator Payouts (Admin)
// @Description  Retrieves a paginated and filterable list of creator payout rows.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body payout.ScanPayoutsRequest true "List payouts request with filters, pagination, and sorting"
// @Success      200  {object}  handlers.RespListPayouts
// @Router       /api/v1/admin/payouts/list [post]
func ApiListPayouts(store payout.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payout.ScanPayoutsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := store.ScanPayouts(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		items := lo.Map(res.Items, func(it *models.CreatorPayout, _ int) *PayoutItem { return toPayoutItem(it) })
		c.JSON(http.StatusOK, response.OKT(&ListPayoutsResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Pause Background Job (Admin)
// @Description  Takes a named job off the schedule until resumed.
// @Tags         Admin
// @Produce      json
// @Param        job path string true "Job name"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/scheduler/{job}/pause [post]
func ApiPauseJob(s *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Pause(c.Param("job")); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Resume Background Job (Admin)
// @Description  Puts a paused job back on the schedule under its configured spec.
// @Tags         Admin
// @Produce      json
// @Param        job path string true "Job name"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/scheduler/{job}/resume [post]
func ApiResumeJob(s *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.Resume(c.Param("job")); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterAdminRoutes(r gin.IRouter, job *payout.SettlementJob, store payout.Store, sched *scheduler.Scheduler, cfg *config.Config) {
	r.POST("/payouts/process-monthly", ApiProcessMonthlyPayouts(job, cfg))
	r.POST("/payouts/list", ApiListPayouts(store))
	r.POST("/scheduler/:job/pause", ApiPauseJob(sched))
	r.POST("/scheduler/:job/resume", ApiResumeJob(sched))
}
