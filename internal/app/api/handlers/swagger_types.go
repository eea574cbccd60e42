package handlers

import (
	"github.com/tierhive/billing/internal/app/service/payout"
	"github.com/tierhive/billing/internal/app/service/tierswitch"
	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespUpgrade wraps UpgradeResult in the standard envelope.
type RespUpgrade struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    tierswitch.UpgradeResult `json:"data"`
}

// RespDowngrade wraps DowngradeResult in the standard envelope.
type RespDowngrade struct {
	Code    response.APIResponseCode   `json:"code"`
	Message string                     `json:"message"`
	Data    tierswitch.DowngradeResult `json:"data"`
}

// RespPendingChanges wraps the pending-change list in the standard envelope.
type RespPendingChanges struct {
	Code    response.APIResponseCode            `json:"code"`
	Message string                              `json:"message"`
	Data    []*models.PendingSubscriptionChange `json:"data"`
}

// RespChangeHistory wraps the change audit trail in the standard envelope.
type RespChangeHistory struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    []*models.SubscriptionChange `json:"data"`
}

// RespEarnings wraps EarningsSummary in the standard envelope.
type RespEarnings struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    payout.EarningsSummary   `json:"data"`
}

// RespRunReport wraps a settlement RunReport in the standard envelope.
type RespRunReport struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    payout.RunReport         `json:"data"`
}

// RespListPayouts wraps ListPayoutsResponse in the standard envelope.
type RespListPayouts struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    ListPayoutsResponse      `json:"data"`
}
