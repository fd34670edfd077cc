package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"
	"github.com/BerniceZTT/crm_api/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingOnly struct{}

func (pingOnly) Ping(context.Context) error { return nil }

func (pingOnly) DatabaseStatus(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

type noJobs struct{}

func (noJobs) Stats() worker.Stats { return worker.Stats{} }

func newRouter(t *testing.T) (*gin.Engine, *utils.TokenService) {
	t.Helper()
	tokens := utils.NewTokenService("a", "r", time.Minute, time.Hour, time.Minute)
	router := newRouterWith(t, &Dependencies{
		Tokens:          tokens,
		Cache:           cache.NewMemory(time.Minute),
		CacheTTL:        time.Minute,
		RateLimitMax:    100,
		RateLimitWindow: time.Minute,
		Database:        pingOnly{},
		Jobs:            noJobs{},
	})
	return router, tokens
}

func newRouterWith(t *testing.T, d *Dependencies) *gin.Engine {
	t.Helper()
	router := gin.New()
	require.NotPanics(t, func() { RegisterRoutes(router, d) })
	return router
}

func TestRouteTable(t *testing.T) {
	router, _ := newRouter(t)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /api/users/register",
		"POST /api/users/login",
		"POST /api/users/",
		"GET /api/users/profile/:id",
		"DELETE /api/users/remove/:id",
		"GET /api/customers/:id/timeline",
		"GET /api/customers/export/:format",
		"POST /api/customers/import",
		"GET /api/customers/tags/:tagId/customers",
		"POST /api/customers/:id/tags/:tagId",
		"GET /api/contacts/type/:type",
		"GET /api/deals/pipeline/stats",
		"PUT /api/deals/:id/stage",
		"PATCH /api/tasks/:id/complete",
		"GET /api/tasks/overdue",
		"PUT /api/interactions/:id/complete",
		"GET /api/notes/:id/:ownerId",
		"GET /api/activity-logs/user/:userId",
		"POST /api/approvals/process",
		"POST /api/approvals/:id/resubmit",
		"GET /api/health",
		"GET /api/db-status",
	} {
		assert.True(t, registered[want], want)
	}
	assert.False(t, registered["PUT /api/activity-logs/:id"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, tokens := newRouter(t)

	for _, path := range []string{"/api/customers/", "/api/deals/", "/api/users/profile", "/api/activity-logs/"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	rep, err := tokens.GenerateAccessToken(models.NewID(), string(models.UserRoleSALES_REP))
	require.NoError(t, err)
	for _, path := range []string{"/api/activity-logs/", "/api/users/", "/api/db-status"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+rep)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/users/",
		strings.NewReader(`{"email":"boss@example.com","password":"correct-horse","firstName":"B","lastName":"C","role":"ADMIN"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+rep)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthIsPublic(t *testing.T) {
	router, _ := newRouter(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
