package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "learnhub_backend/internals/helpers"
)

// OnlyRoles allows the request through only when the caller's role is in the
// allowed set. Distinct from ownership checks, which live in the services.
func OnlyRoles(forbiddenMessage string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok || role == "" {
			return helper.NewError(fiber.StatusUnauthorized, helper.CodeUnauthorized, "Unauthorized: missing role information")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if forbiddenMessage == "" {
			forbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.NewError(fiber.StatusForbidden, helper.CodeForbidden, forbiddenMessage)
	}
}
