package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/blacklist-service/internal/config"
	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
			AdminUsername:         "root",
			AdminPassword:         "hunter2",
			AdminDisplayName:      "Admin",
		},
	}
	return NewAuthService(cfg, store.Users()), store
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  somchai  ", "somchai@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "somchai", user.Username, "username is trimmed")
	assert.NotEqual(t, "secret", user.PasswordHash, "passwords are never stored in the clear")
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name, username, email, password string
	}{
		{"blank username", "  ", "a@example.com", "pw"},
		{"blank email", "a", "  ", "pw"},
		{"blank password", "a", "a@example.com", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.email, tc.password)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "somchai", "somchai@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "somchai", "other@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	_, err = svc.Register(ctx, "other", "somchai@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "somchai", "somchai@example.com", "secret")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "somchai", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.Identity.SubjectID)
	assert.False(t, result.Identity.IsAdmin)
	assert.False(t, result.ExpiresAt.IsZero())
}

func TestLoginFailureIsIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "somchai", "somchai@example.com", "secret")
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "somchai", "nope")
	require.Error(t, wrongPass)
	_, unknownUser := svc.Login(ctx, "nobody", "nope")
	require.Error(t, unknownUser)

	assert.Equal(t, apperrors.ToDomainError(wrongPass).Message, apperrors.ToDomainError(unknownUser).Message)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(wrongPass).Code)
}

func TestAdminLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	result, err := svc.Login(ctx, "root", "hunter2")
	require.NoError(t, err)
	assert.True(t, result.Identity.IsAdmin)
	assert.Equal(t, "Admin", result.Identity.Username)

	_, err = svc.Login(ctx, "root", "wrong")
	require.Error(t, err, "the admin username alone is not enough")
}

func TestMe(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "somchai", "somchai@example.com", "secret")
	require.NoError(t, err)

	me, err := svc.Me(ctx, domain.Identity{SubjectID: user.ID, Username: "somchai"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	adminResult, err := svc.Login(ctx, "root", "hunter2")
	require.NoError(t, err)
	adminMe, err := svc.Me(ctx, adminResult.Identity)
	require.NoError(t, err)
	assert.Equal(t, "Admin", adminMe.Username, "the administrator has no stored row")

	_, err = svc.Me(ctx, domain.Identity{SubjectID: "u-missing", Username: "ghost"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
