// File: internal/middleware/auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poi_backend/internal/auth"
	"poi_backend/internal/common"
	"poi_backend/internal/config"
	"poi_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type principalStub struct {
	id   uuid.UUID
	role string
}

func (p *principalStub) GetID() uuid.UUID { return p.id }
func (p *principalStub) GetEmail() string { return "p@example.com" }
func (p *principalStub) GetRole() string  { return p.role }

func testAuthSetup(t *testing.T) (*config.Config, shared.TokenService, auth.TokenBlocklistService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecretKey:      "middleware-test-secret",
		JWTExpiry:         time.Hour,
		SessionCookieName: "poi_session",
	}
	tokenService := auth.NewJWTService(cfg, zap.NewNop())
	blocklist := auth.NewInMemoryBlocklistService(auth.InMemoryBlocklistConfig{
		DefaultExpiration: time.Hour,
		CleanupInterval:   time.Hour,
	})

	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokenService, blocklist, cfg, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"principal_id": common.GetPrincipalIDFromContext(c).String(),
			"role":         common.GetPrincipalRoleFromContext(c),
		})
	})
	router.GET("/admin-only",
		AuthMiddleware(tokenService, blocklist, cfg, zap.NewNop()),
		RoleAuthMiddleware(common.RoleAdmin),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
	return cfg, tokenService, blocklist, router
}

func TestAuthMiddleware_CookieToken(t *testing.T) {
	cfg, tokenService, _, router := testAuthSetup(t)

	token, _, err := tokenService.GenerateToken(&principalStub{id: uuid.New(), role: common.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), common.RoleUser)
}

func TestAuthMiddleware_BearerFallback(t *testing.T) {
	_, tokenService, _, router := testAuthSetup(t)

	token, _, err := tokenService.GenerateToken(&principalStub{id: uuid.New(), role: common.RoleUser})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, _, _, router := testAuthSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	cfg, _, _, router := testAuthSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	cfg, tokenService, blocklist, router := testAuthSetup(t)

	token, expiresAt, err := tokenService.GenerateToken(&principalStub{id: uuid.New(), role: common.RoleUser})
	require.NoError(t, err)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	require.NoError(t, blocklist.AddToBlocklist(context.Background(), claims.ID, expiresAt))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleAuthMiddleware(t *testing.T) {
	cfg, tokenService, _, router := testAuthSetup(t)

	userToken, _, err := tokenService.GenerateToken(&principalStub{id: uuid.New(), role: common.RoleUser})
	require.NoError(t, err)
	adminToken, _, err := tokenService.GenerateToken(&principalStub{id: uuid.New(), role: common.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: userToken})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code, "plain users must not pass the admin gate")

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: cfg.SessionCookieName, Value: adminToken})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
