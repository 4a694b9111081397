package controllers

import (
	"oakridge/database"
	"oakridge/middleware"
	courseModels "oakridge/models/course"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateModule adds a content module to a course
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title      string `json:"title" validate:"required,min=3"`
		Content    string `json:"content" validate:"required"`
		OrderIndex int    `json:"order_index" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.CourseModule{
		CourseID:   uint(courseID),
		Title:      reqData.Title,
		Content:    reqData.Content,
		OrderIndex: reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	utils.NotifyCourseMutation("Module Added", course.Title+" / "+module.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule edits a module
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title      *string `json:"title" validate:"omitempty,min=3"`
		Content    *string `json:"content"`
		OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
		Publish    *bool   `json:"publish"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var module courseModels.CourseModule
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Content != nil {
		updates["content"] = *reqData.Content
	}
	if reqData.OrderIndex != nil {
		updates["order_index"] = *reqData.OrderIndex
	}
	if reqData.Publish != nil {
		updates["is_published"] = *reqData.Publish
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No fields to update!", nil)
	}

	if err := database.Database.Db.Model(&module).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft deletes a module. Completion rows for it remain but
// stop counting once the module is no longer published.
func AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.CourseModule
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := database.Database.Db.Model(&module).Updates(map[string]interface{}{
		"is_deleted":   true,
		"is_published": false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminListModules lists all modules of a course including drafts
func AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var modules []courseModels.CourseModule
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}
