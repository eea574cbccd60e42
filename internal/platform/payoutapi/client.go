package payoutapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client is a minimal JSON client for external disbursement APIs. Every call
// carries a bounded timeout; a deadline hit surfaces as ErrTimeout so callers
// can record the transfer as failed rather than indeterminate.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *zap.SugaredLogger
}

var ErrTimeout = errors.New("disbursement request timed out")

func New(baseURL, apiKey string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log,
	}
}

// TransferRequest is the raw transfer payload. Recipient holds rail-specific
// fields (msisdn, account_number, bank_code).
type TransferRequest struct {
	Reference string            `json:"reference"`
	Amount    string            `json:"amount"`
	Currency  string            `json:"currency"`
	Recipient map[string]string `json:"recipient"`
}

type TransferResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	Error         string `json:"error,omitempty"`
}

func (r *TransferResponse) Succeeded() bool {
	return r != nil && (r.Status == "success" || r.Status == "accepted")
}

// CreateTransfer posts a transfer and decodes the result. Transport and
// decode failures come back as errors; API-level rejections come back as a
// response with Succeeded() == false.
func (c *Client) CreateTransfer(ctx context.Context, path string, req *TransferRequest) (*TransferResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transfer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build transfer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("transfer request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read transfer response: %w", err)
	}

	var out TransferResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode transfer response (http %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("transfer endpoint returned http %d: %s", resp.StatusCode, out.Error)
	}
	return &out, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
