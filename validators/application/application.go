package applicationValidator

import (
	"strconv"
	"strings"

	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"

	"github.com/gofiber/fiber/v2"
)

// SubmitApplication validates the application answers against the active
// question set: every required active question must carry a non-empty answer.
func SubmitApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers are required!", nil)
		}

		errors := make(map[string]string)

		// Answer keys must be question IDs
		for key := range reqData.Answers {
			if id, err := strconv.Atoi(key); err != nil || id <= 0 {
				errors[key] = "Invalid question ID!"
			}
		}

		var questions []models.ApplicationQuestion
		if err := database.Database.Db.
			Where("is_active = ? AND is_deleted = ?", true, false).
			Find(&questions).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate application!", nil)
		}

		for _, q := range questions {
			if !q.IsRequired {
				continue
			}
			key := strconv.FormatUint(uint64(q.ID), 10)
			if strings.TrimSpace(reqData.Answers[key]) == "" {
				errors[key] = "This question requires an answer!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswers", reqData.Answers)
		return c.Next()
	}
}
