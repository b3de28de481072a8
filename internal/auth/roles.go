package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-swap-service/internal/domain"
	apperrors "github.com/spec-kit/shift-swap-service/pkg/util/errorutil"
)

// RequireRole ensures the signed-in user holds one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("sign in required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireManager restricts a route to store managers.
func RequireManager() fiber.Handler {
	return RequireRole(domain.UserRoleManager)
}
