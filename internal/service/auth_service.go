package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/scamwatch/blacklist-service/internal/auth"
	"github.com/scamwatch/blacklist-service/internal/config"
	"github.com/scamwatch/blacklist-service/internal/domain"
	"github.com/scamwatch/blacklist-service/internal/repository"
	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows. The administrator is
// an injected configuration value, never a stored user; its credentials are
// compared in constant time right here at the login boundary.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	admin      config.AuthConfig
}

// LoginResult carries the issued credential and the authenticated identity.
type LoginResult struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		admin:      cfg.Auth,
	}
}

// Register creates a new community member. Username and email must be unique
// across registered users.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("username, email and password required", nil)
	}

	taken, err := s.users.UsernameOrEmailTaken(ctx, username, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if taken {
		return nil, apperrors.NewConflict("username or email already registered", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index is authoritative under concurrent registration.
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates either the configured administrator or a registered
// user. A wrong password and an unknown username produce the same error, so
// a failed login never reveals whether the account exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	if s.isAdminLogin(username, password) {
		return s.issueToken(domain.AdminIdentity(s.admin.AdminDisplayName))
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid username or password")
	}

	return s.issueToken(domain.Identity{SubjectID: user.ID, Username: user.Username})
}

// Me echoes the authenticated subject. The administrator has no user row;
// registered users are read back from the store.
func (s *AuthService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.IsAdmin {
		return &domain.User{ID: identity.SubjectID, Username: identity.Username}, nil
	}
	user, err := s.users.GetByID(ctx, identity.SubjectID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) isAdminLogin(username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.AdminUsername))
	passMatch := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.AdminPassword))
	return userMatch&passMatch == 1
}

func (s *AuthService) issueToken(identity domain.Identity) (*LoginResult, error) {
	token, exp, err := s.tokenMgr.GenerateToken(identity)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &LoginResult{Identity: identity, Token: token, ExpiresAt: exp}, nil
}
