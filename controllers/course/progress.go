package controllers

import (
	"errors"

	"oakridge/database"
	"oakridge/middleware"
	courseModels "oakridge/models/course"
	courseService "oakridge/services/course"

	"github.com/gofiber/fiber/v2"
)

// GetModuleContent returns a single module's content for an enrolled user
func GetModuleContent(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	if _, err := courseService.GetProgress(database.Database.Db, user.ID, uint(courseID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var module courseModels.CourseModule
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?",
		moduleID, courseID, false, true).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var completion courseModels.ModuleCompletion
	isCompleted := database.Database.Db.Where("user_id = ? AND module_id = ?", user.ID, moduleID).
		First(&completion).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!", fiber.Map{
		"module":       module,
		"is_completed": isCompleted,
	})
}

// CompleteModule marks a module as completed and recomputes overall progress.
// Completing every module does not by itself award the certificate; the
// course quiz still has to be passed.
func CompleteModule(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	progress, err := courseService.CompleteModule(database.Database.Db, user.ID, uint(courseID), uint(moduleID))
	if err != nil {
		switch {
		case errors.Is(err, courseService.ErrNotEnrolled):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
		case errors.Is(err, courseService.ErrModuleNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module completed!", progress)
}

// GetUserProgress gets the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	progress, err := courseService.GetProgress(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	completedIDs, err := courseService.CompletedModuleIDs(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":             progress,
		"completed_module_ids": completedIDs,
	})
}
