package middleware

import (
	"oakridge/database"
	"oakridge/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that checks the authenticated user holds
// one of the allowed roles. Runs after JWTMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		}

		for _, role := range allowed {
			if user.Role == role {
				c.Locals("userRole", user.Role)
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
