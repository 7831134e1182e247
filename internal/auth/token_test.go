package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/blacklist-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	identity := domain.Identity{SubjectID: "u-1", Username: "somchai"}
	token, expiresAt, err := tm.GenerateToken(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity())
}

func TestTokenCarriesAdminFlag(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken(domain.AdminIdentity("Admin"))
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, domain.AdminSubjectID, claims.Subject)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	other := NewTokenManager("another-secret", 60)

	token, _, err := tm.GenerateToken(domain.Identity{SubjectID: "u-1", Username: "somchai"})
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -1}

	token, _, err := tm.GenerateToken(domain.Identity{SubjectID: "u-1", Username: "somchai"})
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	require.NoError(t, ComparePassword(hash, "secret"))
	require.Error(t, ComparePassword(hash, "wrong"))
}
