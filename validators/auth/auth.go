package authValidator

import (
	"oakridge/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// OAuthLogin validator middleware
func OAuthLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Provider    string `json:"provider" validate:"required,oneof=google github"`
			AccessToken string `json:"access_token" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Provider":
					errors["provider"] = "Provider must be google or github!"
				case "AccessToken":
					errors["access_token"] = "Access token is required!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOAuthLogin", reqData)
		return c.Next()
	}
}

// AdminLogin validator middleware
func AdminLogin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required,min=8"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Email":
					errors["email"] = "Invalid email!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminLogin", reqData)
		return c.Next()
	}
}
