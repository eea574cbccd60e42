package provider

import (
	"context"
	"errors"

	"github.com/tierhive/billing/internal/platform/payoutapi"
	"github.com/tierhive/billing/pkg/types"
)

type bankTransferProvider struct {
	client *payoutapi.Client
}

func NewBankTransfer(client *payoutapi.Client) Provider {
	return &bankTransferProvider{client: client}
}

func (p *bankTransferProvider) Name() types.PayoutMethod {
	return types.PayoutMethodBankTransfer
}

func (p *bankTransferProvider) Process(ctx context.Context, req *DisbursementRequest) (*DisbursementResult, error) {
	accountNumber := req.Account.DetailString("account_number")
	bankCode := req.Account.DetailString("bank_code")
	if accountNumber == "" || bankCode == "" {
		return &DisbursementResult{Success: false, FailureReason: "payout account is missing bank details"}, nil
	}

	resp, err := p.client.CreateTransfer(ctx, "/v1/transfers", &payoutapi.TransferRequest{
		Reference: req.PayoutID,
		Amount:    req.Amount.StringFixed(2),
		Currency:  req.Currency,
		Recipient: map[string]string{
			"account_number": accountNumber,
			"bank_code":      bankCode,
			"account_name":   req.Account.DetailString("account_name"),
		},
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
