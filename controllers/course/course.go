package controllers

import (
	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"
	courseModels "oakridge/models/course"
	courseService "oakridge/services/course"

	"github.com/gofiber/fiber/v2"
)

// requireUser resolves the authenticated user or writes the 401 response.
func requireUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return &user, nil
}

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	if _, err := requireUser(c); err != nil {
		return err
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails gets a published course with its modules and quiz summary
func GetCourseDetails(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?",
		courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.CourseModule
	database.Database.Db.
		Select("id", "course_id", "title", "order_index", "created_at", "updated_at").
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&modules)

	var quiz courseModels.Quiz
	hasQuiz := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error == nil

	progress, perr := courseService.GetProgress(database.Database.Db, user.ID, uint(courseID))
	isEnrolled := perr == nil

	response := fiber.Map{
		"course":      course,
		"modules":     modules,
		"is_enrolled": isEnrolled,
	}
	if hasQuiz {
		response["quiz"] = fiber.Map{
			"id":            quiz.ID,
			"title":         quiz.Title,
			"passing_score": quiz.PassingScore,
		}
	}
	if isEnrolled {
		response["progress"] = progress
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}
