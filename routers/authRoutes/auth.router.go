package authRoutes

import (
	authController "oakridge/controllers/auth"
	"oakridge/middleware"
	authValidator "oakridge/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/oauth/login", authValidator.OAuthLogin(), authController.OAuthLogin)
	authGroup.Post("/admin/login", authValidator.AdminLogin(), authController.AdminLogin)
	authGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
}
