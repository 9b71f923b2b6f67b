package auth

import (
	"testing"
	"time"

	"github.com/autoparts/backend/internal/domain/identity"
	"github.com/autoparts/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser("An Tran", "an@example.com", "$2a$10$hash", role)
	require.NoError(t, err)
	return u
}

func TestIssueAndValidate(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "autoparts"})
	user := testUser(t, identity.RoleStaff)

	token, expiresAt, err := svc.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	role, err := claims.ParsedRole()
	require.NoError(t, err)
	assert.Equal(t, identity.RoleStaff, role)

	id, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "secret-a"})
	verifier := NewJWTService(config.JWTConfig{Secret: "secret-b"})

	token, _, err := issuer.Issue(testUser(t, identity.RoleBuyer))
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", Expiration: -time.Hour})

	token, _, err := svc.Issue(testUser(t, identity.RoleBuyer))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret"})
	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Compare(hash, "secret1"))
	assert.Error(t, hasher.Compare(hash, "wrong"))
}
