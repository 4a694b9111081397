package adminController

import (
	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
)

// ListUsers lists platform users with optional role filter and pagination
func ListUsers(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedUserList").(*struct {
		Page  *int   `json:"page"`
		Limit *int   `json:"limit"`
		Role  string `json:"role"`
	})

	page := 1
	limit := 20
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if reqData != nil && reqData.Role != "" {
		db = db.Where("role = ?", reqData.Role)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	for i := range users {
		users[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UpdateUserRole changes a user's role
func UpdateUserRole(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	targetID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedRoleChange").(*struct {
		Role string `json:"role" validate:"required,oneof=PENDING MEMBER ADMIN"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if uint(targetID) == adminID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot change your own role!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	oldRole := user.Role
	if oldRole == reqData.Role {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Role unchanged.", user)
	}

	if err := database.Database.Db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	utils.NotifyRoleChanged(user.Name, oldRole, reqData.Role)

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", user)
}
