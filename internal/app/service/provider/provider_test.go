package provider

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

type stubProvider struct {
	name   types.PayoutMethod
	result *DisbursementResult
	called int
}

func (s *stubProvider) Name() types.PayoutMethod { return s.name }

func (s *stubProvider) Process(_ context.Context, _ *DisbursementRequest) (*DisbursementResult, error) {
	s.called++
	return s.result, nil
}

func TestRouter_DispatchesByMethod(t *testing.T) {
	momo := &stubProvider{name: types.PayoutMethodMTNMoMo, result: &DisbursementResult{Success: true, TransactionID: "momo-1"}}
	bank := &stubProvider{name: types.PayoutMethodBankTransfer, result: &DisbursementResult{Success: true, TransactionID: "bank-1"}}
	r := NewRouter(zap.NewNop().Sugar(), momo, bank)

	req := &DisbursementRequest{
		PayoutID:  "p1",
		CreatorID: "creator1",
		Amount:    decimal.NewFromInt(50),
		Currency:  "USD",
		Account:   &models.PayoutAccount{CreatorID: "creator1"},
	}

	res, err := r.Dispatch(context.Background(), types.PayoutMethodBankTransfer, req)
	require.NoError(t, err)
	require.Equal(t, "bank-1", res.TransactionID)
	require.Equal(t, 1, bank.called)
	require.Zero(t, momo.called)
}

func TestRouter_UnsupportedMethodIsConfigurationError(t *testing.T) {
	r := NewRouter(zap.NewNop().Sugar(),
		&stubProvider{name: types.PayoutMethodMTNMoMo, result: &DisbursementResult{Success: true}})

	_, err := r.Dispatch(context.Background(), types.PayoutMethod("paypal"), &DisbursementRequest{})
	require.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestMobileMoney_MissingMsisdnFailsWithoutCall(t *testing.T) {
	p := NewMTNMoMo(nil)

	res, err := p.Process(context.Background(), &DisbursementRequest{
		Amount:  decimal.NewFromInt(10),
		Account: &models.PayoutAccount{Details: map[string]any{}},
	})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.NotEmpty(t, res.FailureReason)
}

func TestBankTransfer_MissingDetailsFailsWithoutCall(t *testing.T) {
	p := NewBankTransfer(nil)

	res, err := p.Process(context.Background(), &DisbursementRequest{
		Amount:  decimal.NewFromInt(10),
		Account: &models.PayoutAccount{Details: map[string]any{"account_number": "123"}},
	})
	require.NoError(t, err)
	require.False(t, res.Success)
}
