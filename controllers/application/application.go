package applicationController

import (
	"encoding/json"
	"time"

	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetQuestions returns the active application form questions
func GetQuestions(c *fiber.Ctx) error {
	var questions []models.ApplicationQuestion
	if err := database.Database.Db.
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("order_index asc").
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", questions)
}

// SubmitApplication submits (or, after a rejection, resubmits) the user's
// membership application. Approved applications cannot be resubmitted.
func SubmitApplication(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	answers, ok := c.Locals("validatedAnswers").(map[string]string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers payload!", nil)
	}

	db := database.Database.Db

	var existing models.MembershipApplication
	err = db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&existing).Error
	if err == nil {
		switch existing.Status {
		case models.ApplicationPending:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application already pending review!", nil)
		case models.ApplicationApproved:
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application already approved!", nil)
		default:
			// Rejected: replace answers and move back to pending
			updates := map[string]interface{}{
				"answers":          rawAnswers,
				"status":           models.ApplicationPending,
				"submitted_at":     time.Now(),
				"reviewed_at":      nil,
				"reviewed_by":      nil,
				"rejection_reason": "",
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
			}
			utils.NotifyApplicationSubmitted(user.Name, user.Email)
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Application resubmitted successfully!", existing)
		}
	} else if err != gorm.ErrRecordNotFound {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	application := models.MembershipApplication{
		UserID:      userID,
		Answers:     rawAnswers,
		Status:      models.ApplicationPending,
		SubmittedAt: time.Now(),
	}

	if err := db.Create(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit application!", nil)
	}

	utils.NotifyApplicationSubmitted(user.Name, user.Email)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully!", application)
}

// GetMyApplication returns the current user's application and its status
func GetMyApplication(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var application models.MembershipApplication
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No application found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application fetched successfully!", application)
}
