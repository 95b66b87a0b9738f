package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware restricting the route to callers whose
// token carries the given role. Must run after JWTMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claimRole, ok := c.Locals("role").(string)
		if !ok {
			return Error(c, fiber.StatusUnauthorized, "Authentication token is required")
		}

		if claimRole != role {
			return Error(c, fiber.StatusForbidden, "You do not have permission to access this resource")
		}

		return c.Next()
	}
}
