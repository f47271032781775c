// File: internal/auth/service_test.go
package auth

import (
	"context"
	"testing"
	"time"

	"poi_backend/internal/common"
	"poi_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testPrincipal struct {
	id    uuid.UUID
	email string
	role  string
}

func (p *testPrincipal) GetID() uuid.UUID { return p.id }
func (p *testPrincipal) GetEmail() string { return p.email }
func (p *testPrincipal) GetRole() string  { return p.role }

func newTestJWTService(expiry time.Duration) *JWTService {
	cfg := &config.Config{
		JWTSecretKey: "test-secret-key-do-not-use-in-prod",
		JWTExpiry:    expiry,
	}
	return &JWTService{cfg: cfg, logger: zap.NewNop()}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	principal := &testPrincipal{id: uuid.New(), email: "p@example.com", role: common.RoleAdmin}

	token, expiresAt, err := svc.GenerateToken(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, principal.id, claims.UserID)
	assert.Equal(t, "p@example.com", claims.Email)
	assert.Equal(t, common.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID, "every token must carry a JTI for revocation")
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	principal := &testPrincipal{id: uuid.New(), email: "p@example.com", role: common.RoleUser}

	token, _, err := svc.GenerateToken(principal)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(time.Hour)
	principal := &testPrincipal{id: uuid.New(), email: "p@example.com", role: common.RoleUser}

	token, _, err := issuer.GenerateToken(principal)
	require.NoError(t, err)

	verifier := &JWTService{
		cfg:    &config.Config{JWTSecretKey: "a-different-secret", JWTExpiry: time.Hour},
		logger: zap.NewNop(),
	}
	_, err = verifier.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	_, err = svc.ValidateToken("")
	require.Error(t, err)
}

func TestInMemoryBlocklistService(t *testing.T) {
	svc := NewInMemoryBlocklistService(InMemoryBlocklistConfig{
		DefaultExpiration: time.Minute,
		CleanupInterval:   time.Minute,
	})
	ctx := context.Background()

	jti := uuid.NewString()
	blocked, err := svc.IsBlocklisted(ctx, jti)
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, svc.AddToBlocklist(ctx, jti, time.Now().Add(time.Minute)))
	blocked, err = svc.IsBlocklisted(ctx, jti)
	require.NoError(t, err)
	assert.True(t, blocked)

	// A JTI whose token already expired never enters the blocklist.
	expiredJTI := uuid.NewString()
	require.NoError(t, svc.AddToBlocklist(ctx, expiredJTI, time.Now().Add(-time.Minute)))
	blocked, err = svc.IsBlocklisted(ctx, expiredJTI)
	require.NoError(t, err)
	assert.False(t, blocked)
}
