package adminValidator

import (
	"strconv"
	"strings"

	"oakridge/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// parseID validates a positive integer path parameter. ok is false when the
// error response has already been written.
func parseID(c *fiber.Ctx, name, label string) (int, bool, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}

	return id, true, nil
}

// ApplicationID validates the :id path parameter
func ApplicationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "id", "Application ID")
		if !ok {
			return resp
		}
		c.Locals("applicationID", id)
		return c.Next()
	}
}

// RejectApplication validates the rejection body
func RejectApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "id", "Application ID")
		if !ok {
			return resp
		}

		reqData := new(struct {
			Reason string `json:"reason" validate:"required,min=3"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"reason": "A rejection reason of at least 3 characters is required!",
			})
		}

		c.Locals("applicationID", id)
		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}

// UserList validates the user listing query parameters
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int   `json:"page"`
			Limit *int   `json:"limit"`
			Role  string `json:"role"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if reqData.Role != "" && reqData.Role != "PENDING" && reqData.Role != "MEMBER" && reqData.Role != "ADMIN" {
			errors["role"] = "Role must be PENDING, MEMBER or ADMIN!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

// RoleChange validates the role change request
func RoleChange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "id", "User ID")
		if !ok {
			return resp
		}

		reqData := new(struct {
			Role string `json:"role" validate:"required,oneof=PENDING MEMBER ADMIN"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be PENDING, MEMBER or ADMIN!",
			})
		}

		c.Locals("targetUserID", id)
		c.Locals("validatedRoleChange", reqData)
		return c.Next()
	}
}

// CreateQuestion validates a new application question
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Prompt     string `json:"prompt" validate:"required,min=5"`
			OrderIndex int    `json:"order_index" validate:"gte=0"`
			IsRequired *bool  `json:"is_required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Prompt":
					errors["prompt"] = "Prompt must be at least 5 characters long!"
				case "OrderIndex":
					errors["order_index"] = "Order index must not be negative!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// DeleteQuestion validates the :id path parameter for question deletion
func DeleteQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "id", "Question ID")
		if !ok {
			return resp
		}
		c.Locals("questionID", id)
		return c.Next()
	}
}

// UpdateQuestion validates a question edit
func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "id", "Question ID")
		if !ok {
			return resp
		}

		reqData := new(struct {
			Prompt     *string `json:"prompt" validate:"omitempty,min=5"`
			OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
			IsRequired *bool   `json:"is_required"`
			IsActive   *bool   `json:"is_active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"prompt": "Prompt must be at least 5 characters long!",
			})
		}

		c.Locals("questionID", id)
		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}
