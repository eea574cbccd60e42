package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/logctx"
	"github.com/tierhive/billing/pkg/types"
)

// ErrUnsupportedMethod means the creator's payout method has no registered
// provider. This is a configuration error, not a retryable failure.
var ErrUnsupportedMethod = errors.New("unsupported payout method")

// DisbursementRequest is one settlement amount to move to a creator.
type DisbursementRequest struct {
	PayoutID  string
	CreatorID string
	Amount    decimal.Decimal
	Currency  string
	Account   *models.PayoutAccount
}

// DisbursementResult normalizes provider outcomes. A timeout or provider
// rejection is Success == false with a reason; the engine never retries a
// call within the same settlement run.
type DisbursementResult struct {
	Success       bool
	TransactionID string
	FailureReason string
}

// Provider moves funds through one external disbursement rail. Each Process
// call is at-most-once against the external system from this engine's view.
type Provider interface {
	Name() types.PayoutMethod
	Process(ctx context.Context, req *DisbursementRequest) (*DisbursementResult, error)
}

// Router dispatches a disbursement to the provider matching the creator's
// configured payout method.
type Router struct {
	providers map[types.PayoutMethod]Provider
	log       *zap.SugaredLogger
}

func NewRouter(log *zap.SugaredLogger, providers ...Provider) *Router {
	byMethod := make(map[types.PayoutMethod]Provider, len(providers))
	for _, p := range providers {
		byMethod[p.Name()] = p
	}
	return &Router{providers: byMethod, log: log}
}

func (r *Router) Dispatch(ctx context.Context, method types.PayoutMethod, req *DisbursementRequest) (*DisbursementResult, error) {
	p, ok := r.providers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	logctx.FromCtx(ctx, r.log).Infow("dispatching disbursement",
		"payout_id", req.PayoutID, "creator_id", req.CreatorID,
		"method", method, "amount", req.Amount)
	return p.Process(ctx, req)
}
