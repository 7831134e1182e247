package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/scamwatch/blacklist-service/pkg/util/errorutil"
)

// RequireAuthenticated ensures a verified identity is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller carries the elevated-privilege flag.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !identity.IsAdmin {
			return apperrors.NewForbidden("administrator privileges required")
		}
		return c.Next()
	}
}
