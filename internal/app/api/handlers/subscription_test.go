package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/app/service/notify"
	"github.com/tierhive/billing/internal/app/service/tierswitch"
	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/types"
)

type stubSwitchStore struct {
	subs  map[string]*models.Subscription
	tiers map[string]*models.SubscriptionTier
}

func (s *stubSwitchStore) SubscriptionByID(_ context.Context, id string) (*models.Subscription, error) {
	sub, ok := s.subs[id]
	if !ok {
		return nil, tierswitch.ErrSubscriptionNotFound
	}
	cp := *sub
	return &cp, nil
}

func (s *stubSwitchStore) TierByID(_ context.Context, id string) (*models.SubscriptionTier, error) {
	tier, ok := s.tiers[id]
	if !ok {
		return nil, tierswitch.ErrTierNotFound
	}
	return tier, nil
}

func (s *stubSwitchStore) PendingBySubscription(_ context.Context, _ string) ([]*models.PendingSubscriptionChange, error) {
	return nil, nil
}

func (s *stubSwitchStore) History(_ context.Context, _ string, _, _ int) ([]*models.SubscriptionChange, error) {
	panic("not used")
}

func (s *stubSwitchStore) CommitSwitch(_ context.Context, sub *models.Subscription, _ *models.SubscriptionChange) error {
	s.subs[sub.ID] = sub
	return nil
}

func (s *stubSwitchStore) CreatePending(_ context.Context, _ *models.PendingSubscriptionChange) error {
	return nil
}

func (s *stubSwitchStore) CancelPending(_ context.Context, _ string) error {
	panic("not used")
}

func (s *stubSwitchStore) DuePending(_ context.Context, _ time.Time) ([]*models.PendingSubscriptionChange, error) {
	panic("not used")
}

func (s *stubSwitchStore) ApplyPending(_ context.Context, _ string, _ func(sub *models.Subscription) (*models.SubscriptionChange, error)) (bool, error) {
	panic("not used")
}

func newSwitchRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	store := &stubSwitchStore{
		subs: map[string]*models.Subscription{
			"sub-1": {
				ID:        "sub-1",
				FanID:     "fan-1",
				CreatorID: "creator-1",
				TierID:    "tier-basic",
				Status:    types.SubscriptionStatusActive,
				AutoRenew: true,
			},
		},
		tiers: map[string]*models.SubscriptionTier{
			"tier-basic":   {ID: "tier-basic", Price: decimal.RequireFromString("5.00")},
			"tier-premium": {ID: "tier-premium", Price: decimal.RequireFromString("15.00")},
			"tier-same":    {ID: "tier-same", Price: decimal.RequireFromString("5.00")},
		},
	}
	svc := tierswitch.NewService(store, log, notify.NewLogSink(log))

	r := gin.New()
	RegisterSubscriptionRoutes(r.Group("/api/v1"), svc)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestApiUpgradeSubscription_RequiresPayment(t *testing.T) {
	r := newSwitchRouter()
	out := doJSON(t, r, http.MethodPost, "/api/v1/subscriptions/sub-1/upgrade", map[string]any{"tier_id": "tier-premium"})

	require.EqualValues(t, 0, out["code"])
	data := out["data"].(map[string]any)
	require.Equal(t, true, data["requires_payment"])
	require.Equal(t, "10", data["amount_due"])
}

func TestApiUpgradeSubscription_MissingBody(t *testing.T) {
	r := newSwitchRouter()
	out := doJSON(t, r, http.MethodPost, "/api/v1/subscriptions/sub-1/upgrade", nil)
	require.EqualValues(t, 40000, out["code"])
}

func TestApiUpgradeSubscription_UnknownSubscription(t *testing.T) {
	r := newSwitchRouter()
	out := doJSON(t, r, http.MethodPost, "/api/v1/subscriptions/ghost/upgrade", map[string]any{"tier_id": "tier-premium"})
	require.EqualValues(t, 40400, out["code"])
}

func TestApiUpgradeSubscription_EqualPriceIsNotAnUpgrade(t *testing.T) {
	r := newSwitchRouter()
	out := doJSON(t, r, http.MethodPost, "/api/v1/subscriptions/sub-1/upgrade", map[string]any{"tier_id": "tier-same"})
	require.EqualValues(t, 40000, out["code"])
	require.Contains(t, out["data"], "downgrade")
}

func TestApiScheduleDowngrade_WrongDirection(t *testing.T) {
	r := newSwitchRouter()
	out := doJSON(t, r, http.MethodPost, "/api/v1/subscriptions/sub-1/schedule-downgrade", map[string]any{"tier_id": "tier-premium"})
	require.EqualValues(t, 40000, out["code"])
	require.Contains(t, out["data"], "upgrade")
}

func TestApiListPendingChanges_EmptyForKnownSubscription(t *testing.T) {
	r := newSwitchRouter()
	out := doJSON(t, r, http.MethodGet, "/api/v1/subscriptions/sub-1/pending-changes", nil)
	require.EqualValues(t, 0, out["code"])
}
