package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func routeSet(r *gin.Engine) map[string]bool {
	set := map[string]bool{}
	for _, rt := range r.Routes() {
		set[rt.Method+" "+rt.Path] = true
	}
	return set
}

func TestRegisterSubscriptionRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterSubscriptionRoutes(r.Group("/api/v1"), nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/subscriptions/:id/upgrade"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/schedule-downgrade"])
	require.True(t, routes["POST /api/v1/subscriptions/:id/schedule-cancel"])
	require.True(t, routes["GET /api/v1/subscriptions/:id/pending-changes"])
	require.True(t, routes["DELETE /api/v1/pending-changes/:id"])
	require.True(t, routes["GET /api/v1/subscriptions/:id/history"])
}

func TestRegisterPayoutRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterPayoutRoutes(r.Group("/api/v1/payouts"), nil, nil)

	routes := routeSet(r)
	require.True(t, routes["GET /api/v1/payouts/creator/:id/current-earnings"])
}

func TestRegisterAdminRoutes_RegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), nil, nil, nil, nil)

	routes := routeSet(r)
	require.True(t, routes["POST /api/v1/admin/payouts/process-monthly"])
	require.True(t, routes["POST /api/v1/admin/payouts/list"])
	require.True(t, routes["POST /api/v1/admin/scheduler/:job/pause"])
	require.True(t, routes["POST /api/v1/admin/scheduler/:job/resume"])
}
