package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vastrakart/go-storefront/app/models"
)

func testTokenService(expiresIn time.Duration) *TokenService {
	return NewTokenService("test-secret", expiresIn, DefaultRolePermissions())
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testTokenService(time.Hour)
	user := &models.User{
		ID:       42,
		Username: "priya",
		Email:    "priya@example.com",
		Role:     models.RoleCustomer,
	}

	token, err := svc.Generate(user)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, "priya", claims.Username)
	assert.Equal(t, "priya@example.com", claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, DefaultRolePermissions()[models.RoleCustomer], claims.Permissions)
}

func TestTokenPermissionsFollowRoleTable(t *testing.T) {
	svc := testTokenService(time.Hour)

	token, err := svc.Generate(&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	claims, err := svc.Verify(token)
	require.NoError(t, err)

	assert.True(t, claims.HasPermission(PermAdminAccess))
	assert.True(t, claims.HasPermission(PermReturnsManage))
	assert.False(t, claims.HasPermission(PermReturnsRequest))
	assert.True(t, claims.HasRole(models.RoleAdmin, models.RoleContentManager))
	assert.False(t, claims.HasRole(models.RoleCustomer))
}

func TestTokenUnknownRoleHasNoPermissions(t *testing.T) {
	svc := testTokenService(time.Hour)
	token, err := svc.Generate(&models.User{ID: 7, Username: "ghost", Role: "auditor"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Permissions)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := testTokenService(-time.Minute)
	token, err := svc.Generate(&models.User{ID: 1, Username: "late", Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := testTokenService(time.Hour).Generate(&models.User{ID: 1, Username: "a", Role: models.RoleCustomer})
	require.NoError(t, err)

	other := NewTokenService("different-secret", time.Hour, DefaultRolePermissions())
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := testTokenService(time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
