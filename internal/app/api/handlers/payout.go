package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tierhive/billing/internal/app/service/payout"
	"github.com/tierhive/billing/pkg/config"
	"github.com/tierhive/billing/pkg/response"
)

// @Summary      Current Earnings
// @Description  Returns the creator's month-to-date earnings with fee deductions applied. A preview only; nothing is persisted.
// @Tags         Payout
// @Produce      json
// @Param        id path string true "Creator ID"
// @Success      200  {object}  handlers.RespEarnings
// @Router       /api/v1/payouts/creator/{id}/current-earnings [get]
func ApiCurrentEarnings(calc *payout.Calculator, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		loc, err := time.LoadLocation(cfg.Scheduler.Timezone)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		start, end := payout.MonthToDate(time.Now(), loc)

		summary, err := calc.Calculate(c.Request.Context(), c.Param("id"), start, end, payout.RatesFromConfig(cfg))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(summary))
	}
}

func RegisterPayoutRoutes(r gin.IRouter, calc *payout.Calculator, cfg *config.Config) {
	r.GET("/creator/:id/current-earnings", ApiCurrentEarnings(calc, cfg))
}
