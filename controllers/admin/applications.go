package adminController

import (
	"time"

	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
)

// ListApplications lists membership applications, optionally filtered by status
func ListApplications(c *fiber.Ctx) error {
	status := c.Query("status")

	db := database.Database.Db.Model(&models.MembershipApplication{}).Where("is_deleted = ?", false)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var applications []models.MembershipApplication
	if err := db.Order("submitted_at desc").Find(&applications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch applications!", nil)
	}

	type ApplicationWithUser struct {
		models.MembershipApplication
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]ApplicationWithUser, len(applications))
	for i, app := range applications {
		var user models.User
		database.Database.Db.Where("id = ?", app.UserID).First(&user)
		result[i] = ApplicationWithUser{
			MembershipApplication: app,
			UserName:              user.Name,
			UserEmail:             user.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", fiber.Map{
		"applications": result,
		"total":        len(result),
	})
}

// ApproveApplication approves a pending application and promotes the user to MEMBER
func ApproveApplication(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	applicationID := c.Locals("applicationID").(int)

	db := database.Database.Db

	var application models.MembershipApplication
	if err := db.Where("id = ? AND is_deleted = ?", applicationID, false).First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if application.Status != models.ApplicationPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application already reviewed!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", application.UserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Applicant user not found!", nil)
	}

	now := time.Now()
	if err := db.Model(&application).Updates(map[string]interface{}{
		"status":      models.ApplicationApproved,
		"reviewed_at": &now,
		"reviewed_by": &adminID,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve application!", nil)
	}

	oldRole := user.Role
	if user.Role == models.RolePending {
		if err := db.Model(&user).Update("role", models.RoleMember).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user role!", nil)
		}
		utils.NotifyRoleChanged(user.Name, oldRole, models.RoleMember)
	}

	utils.SendApplicationDecisionEmail(user.Email, user.Name, models.ApplicationApproved, "")

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application approved successfully!", application)
}

// RejectApplication rejects a pending application with a reason
func RejectApplication(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	applicationID := c.Locals("applicationID").(int)

	reqData, ok := c.Locals("validatedRejection").(*struct {
		Reason string `json:"reason" validate:"required,min=3"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var application models.MembershipApplication
	if err := db.Where("id = ? AND is_deleted = ?", applicationID, false).First(&application).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Application not found!", nil)
	}

	if application.Status != models.ApplicationPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Application already reviewed!", nil)
	}

	now := time.Now()
	if err := db.Model(&application).Updates(map[string]interface{}{
		"status":           models.ApplicationRejected,
		"reviewed_at":      &now,
		"reviewed_by":      &adminID,
		"rejection_reason": reqData.Reason,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject application!", nil)
	}

	var user models.User
	if err := db.Where("id = ?", application.UserID).First(&user).Error; err == nil {
		utils.SendApplicationDecisionEmail(user.Email, user.Name, models.ApplicationRejected, reqData.Reason)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application rejected!", application)
}
