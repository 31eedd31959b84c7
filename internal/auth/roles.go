package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util/errorutil"
)

// RequireLevel ensures the authenticated caller has one of the allowed levels.
func RequireLevel(allowed ...domain.UserLevel) fiber.Handler {
	allowedSet := make(map[domain.UserLevel]struct{}, len(allowed))
	for _, level := range allowed {
		allowedSet[level] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewAuthenticationFailed("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Level]; !exists {
			return apperrors.NewForbidden("insufficient level")
		}
		return c.Next()
	}
}
