package adminController

import (
	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"

	"github.com/gofiber/fiber/v2"
)

// CreateQuestion adds a question to the membership application form
func CreateQuestion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Prompt     string `json:"prompt" validate:"required,min=5"`
		OrderIndex int    `json:"order_index" validate:"gte=0"`
		IsRequired *bool  `json:"is_required"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	question := models.ApplicationQuestion{
		Prompt:     reqData.Prompt,
		OrderIndex: reqData.OrderIndex,
		IsRequired: true,
		IsActive:   true,
	}
	if reqData.IsRequired != nil {
		question.IsRequired = *reqData.IsRequired
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// ListQuestions lists all application questions including inactive ones
func ListQuestions(c *fiber.Ctx) error {
	var questions []models.ApplicationQuestion
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("order_index asc").
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", questions)
}

// UpdateQuestion edits an application question
func UpdateQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	reqData, ok := c.Locals("validatedQuestionUpdate").(*struct {
		Prompt     *string `json:"prompt" validate:"omitempty,min=5"`
		OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
		IsRequired *bool   `json:"is_required"`
		IsActive   *bool   `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var question models.ApplicationQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Prompt != nil {
		updates["prompt"] = *reqData.Prompt
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}
	if reqData.IsRequired != nil {
		updates["is_required"] = *reqData.IsRequired
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No fields to update!", nil)
	}

	if err := database.Database.Db.Model(&question).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion soft deletes an application question
func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question models.ApplicationQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if err := database.Database.Db.Model(&question).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
