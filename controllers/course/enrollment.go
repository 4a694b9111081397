package controllers

import (
	"errors"

	"oakridge/database"
	"oakridge/middleware"
	courseModels "oakridge/models/course"
	courseService "oakridge/services/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the current user in a course. Enrolling twice is
// not an error: the existing progress record is returned unchanged.
func EnrollInCourse(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	progress, err := courseService.Enroll(database.Database.Db, user.ID, uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, courseService.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
		case errors.Is(err, courseService.ErrUserNotFound):
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", progress)
}

// GetUserEnrollments gets all enrollments for the current user with course details
func GetUserEnrollments(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var enrollments []courseModels.UserProgress
	if err := database.Database.Db.Where("user_id = ?", user.ID).
		Order("started_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.UserProgress
		CourseTitle  string `json:"course_title"`
		CourseAuthor string `json:"course_author"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			UserProgress: e,
			CourseTitle:  course.Title,
			CourseAuthor: course.Author,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ?", user.ID).
		Order("issued_date desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
