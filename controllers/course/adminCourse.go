package controllers

import (
	"oakridge/database"
	"oakridge/middleware"
	courseModels "oakridge/models/course"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new draft course
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description" validate:"required,min=5"`
		Author      string `json:"author"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	course := courseModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Author:      reqData.Author,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	utils.NotifyCourseMutation("Created", course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates course fields
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title       *string `json:"title" validate:"omitempty,min=3"`
		Description *string `json:"description" validate:"omitempty,min=5"`
		Author      *string `json:"author"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != nil {
		updates["title"] = *reqData.Title
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.Author != nil {
		updates["author"] = *reqData.Author
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No fields to update!", nil)
	}

	if err := database.Database.Db.Model(&course).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	utils.NotifyCourseMutation("Updated", course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminPublishCourse publishes or unpublishes a course
func AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedPublish").(*struct {
		Publish bool `json:"publish"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Model(&course).Update("is_published", reqData.Publish).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	action := "Unpublished"
	if reqData.Publish {
		action = "Published"
	}
	utils.NotifyCourseMutation(action, course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course "+action+"!", course)
}

// AdminDeleteCourse soft deletes a course. Enrollments and certificates are
// untouched; certificates keep their denormalized course name for lookups.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := database.Database.Db.Model(&course).Updates(map[string]interface{}{
		"is_deleted":   true,
		"is_published": false,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	utils.NotifyCourseMutation("Deleted", course.Title)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all courses including drafts
func AdminGetAllCourses(c *fiber.Ctx) error {
	var courses []courseModels.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// AdminGetCourseEnrollments lists enrollments for a course with user details
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var enrollments []courseModels.UserProgress
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("started_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.UserProgress
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var name, email string
		database.Database.Db.Table("users").Select("name", "email").
			Where("id = ?", e.UserID).Row().Scan(&name, &email)
		result[i] = EnrollmentWithUser{UserProgress: e, UserName: name, UserEmail: email}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
