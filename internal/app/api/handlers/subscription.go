package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tierhive/billing/internal/app/service/tierswitch"
	"github.com/tierhive/billing/pkg/response"
)

type TierSwitchRequest struct {
	TierID string `json:"tier_id" binding:"required"`
}

func switchErrCode(err error) response.APIResponseCode {
	switch {
	case errors.Is(err, tierswitch.ErrSubscriptionNotFound),
		errors.Is(err, tierswitch.ErrTierNotFound),
		errors.Is(err, tierswitch.ErrPendingChangeNotFound):
		return response.APIResponseCodeNotFound
	case errors.Is(err, tierswitch.ErrNotAnUpgrade),
		errors.Is(err, tierswitch.ErrNotADowngrade):
		return response.APIResponseCodeBadRequest
	default:
		return response.APIResponseCodeError
	}
}

// @Summary      Upgrade Subscription
// @Description  Switches a subscription to a pricier tier immediately. When the prorated charge exceeds the fan's credit the response carries requires_payment=true and nothing is changed.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.TierSwitchRequest true "Target tier"
// @Success      200  {object}  handlers.RespUpgrade
// @Router       /api/v1/subscriptions/{id}/upgrade [post]
func ApiUpgradeSubscription(svc *tierswitch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TierSwitchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := svc.Upgrade(c.Request.Context(), c.Param("id"), req.TierID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](switchErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Schedule Downgrade
// @Description  Defers a switch to a cheaper tier until the next billing date. The unused value of the current tier becomes a proration credit when the change applies.
// @Tags         Subscription
// @Accept       json
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        request body handlers.TierSwitchRequest true "Target tier"
// @Success      200  {object}  handlers.RespDowngrade
// @Router       /api/v1/subscriptions/{id}/schedule-downgrade [post]
func ApiScheduleDowngrade(svc *tierswitch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TierSwitchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := svc.ScheduleDowngrade(c.Request.Context(), c.Param("id"), req.TierID)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](switchErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Schedule Cancellation
// @Description  Defers a cancellation until the next billing date. Access is kept until then; no credit accrues.
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespDowngrade
// @Router       /api/v1/subscriptions/{id}/schedule-cancel [post]
func ApiScheduleCancel(svc *tierswitch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.ScheduleCancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](switchErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      List Pending Changes
// @Description  Returns the not-yet-applied deferred change for a subscription (at most one).
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Success      200  {object}  handlers.RespPendingChanges
// @Router       /api/v1/subscriptions/{id}/pending-changes [get]
func ApiListPendingChanges(svc *tierswitch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.ListPending(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](switchErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

// @Summary      Cancel Pending Change
// @Description  Revokes a scheduled downgrade or cancellation before it applies.
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Pending change ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/pending-changes/{id} [delete]
func ApiCancelPendingChange(svc *tierswitch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelPending(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](switchErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

// @Summary      Subscription Change History
// @Description  Returns the audit trail of applied tier changes, newest first.
// @Tags         Subscription
// @Produce      json
// @Param        id path string true "Subscription ID"
// @Param        limit query int false "Page size (default 20)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  handlers.RespChangeHistory
// @Router       /api/v1/subscriptions/{id}/history [get]
func ApiChangeHistory(svc *tierswitch.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))

		rows, err := svc.History(c.Request.Context(), c.Param("id"), limit, offset)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](switchErrCode(err), err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

func RegisterSubscriptionRoutes(r gin.IRouter, svc *tierswitch.Service) {
	subs := r.Group("/subscriptions")
	subs.POST("/:id/upgrade", ApiUpgradeSubscription(svc))
	subs.POST("/:id/schedule-downgrade", ApiScheduleDowngrade(svc))
	subs.POST("/:id/schedule-cancel", ApiScheduleCancel(svc))
	subs.GET("/:id/pending-changes", ApiListPendingChanges(svc))
	subs.GET("/:id/history", ApiChangeHistory(svc))
	r.DELETE("/pending-changes/:id", ApiCancelPendingChange(svc))
}
