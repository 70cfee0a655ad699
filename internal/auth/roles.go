package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/domain"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// Authorize admits callers whose role is one of allowed. It must run after
// AuthMiddleware.Handle.
func Authorize(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
