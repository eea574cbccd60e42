package provider

import (
	"context"
	"errors"

	"github.com/tierhive/billing/internal/platform/payoutapi"
	"github.com/tierhive/billing/pkg/types"
)

// mobileMoneyProvider covers both mobile-money rails; they share the same
// transfer shape and differ only in endpoint and recipient key.
type mobileMoneyProvider struct {
	name   types.PayoutMethod
	path   string
	client *payoutapi.Client
}

func NewMTNMoMo(client *payoutapi.Client) Provider {
	return &mobileMoneyProvider{name: types.PayoutMethodMTNMoMo, path: "/v1/disbursements", client: client}
}

func NewAirtelMoney(client *payoutapi.Client) Provider {
	return &mobileMoneyProvider{name: types.PayoutMethodAirtelMoney, path: "/v2/payouts", client: client}
}

func (p *mobileMoneyProvider) Name() types.PayoutMethod {
	return p.name
}

func (p *mobileMoneyProvider) Process(ctx context.Context, req *DisbursementRequest) (*DisbursementResult, error) {
	msisdn := req.Account.DetailString("msisdn")
	if msisdn == "" {
		return &DisbursementResult{Success: false, FailureReason: "payout account has no msisdn"}, nil
	}

	resp, err := p.client.CreateTransfer(ctx, p.path, &payoutapi.TransferRequest{
		Reference: req.PayoutID,
		Amount:    req.Amount.StringFixed(2),
		Currency:  req.Currency,
		Recipient: map[string]string{"msisdn": msisdn},
	})
	if errors.Is(err, payoutapi.ErrTimeout) {
		return &DisbursementResult{Success: false, FailureReason: "timeout"}, nil
	}
	if err != nil {
		return nil, err
	}
	if !resp.Succeeded() {
		return &DisbursementResult{Success: false, FailureReason: resp.Error}, nil
	}
	return &DisbursementResult{Success: true, TransactionID: resp.TransactionID}, nil
}
