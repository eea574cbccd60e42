package payoutapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateTransfer_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/disbursements", r.URL.Path)
		require.Equal(t, "Bearer key1", r.Header.Get("Authorization"))

		var req TransferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "36.60", req.Amount)

		_ = json.NewEncoder(w).Encode(TransferResponse{Status: "success", TransactionID: "ext-1"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key1", 5*time.Second, zap.NewNop().Sugar())
	resp, err := c.CreateTransfer(context.Background(), "/v1/disbursements", &TransferRequest{
		Reference: "p1",
		Amount:    "36.60",
		Currency:  "USD",
		Recipient: map[string]string{"msisdn": "256700000001"},
	})
	require.NoError(t, err)
	require.True(t, resp.Succeeded())
	require.Equal(t, "ext-1", resp.TransactionID)
}

func TestCreateTransfer_Rejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(TransferResponse{Status: "rejected", Error: "recipient not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key1", 5*time.Second, zap.NewNop().Sugar())
	resp, err := c.CreateTransfer(context.Background(), "/v1/transfers", &TransferRequest{Reference: "p1"})
	require.NoError(t, err)
	require.False(t, resp.Succeeded())
	require.Equal(t, "recipient not found", resp.Error)
}

func TestCreateTransfer_TimeoutMapsToErrTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(TransferResponse{Status: "success"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key1", 20*time.Millisecond, zap.NewNop().Sugar())
	_, err := c.CreateTransfer(context.Background(), "/v1/transfers", &TransferRequest{Reference: "p1"})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestCreateTransfer_ServerErrorIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(TransferResponse{Status: "error", Error: "boom"})
	}))
	defer srv.Close()

	c := New(srv.URL, "key1", 5*time.Second, zap.NewNop().Sugar())
	_, err := c.CreateTransfer(context.Background(), "/v1/transfers", &TransferRequest{Reference: "p1"})
	require.Error(t, err)
}
