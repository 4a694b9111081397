package adminController

import (
	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"
	courseModels "oakridge/models/course"

	"github.com/gofiber/fiber/v2"
)

// DashboardStats returns platform-wide analytics for the admin panel
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, pendingUsers, members int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RolePending, false).Count(&pendingUsers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleMember, false).Count(&members)

	var pendingApps, approvedApps, rejectedApps int64
	db.Model(&models.MembershipApplication{}).Where("status = ? AND is_deleted = ?", models.ApplicationPending, false).Count(&pendingApps)
	db.Model(&models.MembershipApplication{}).Where("status = ? AND is_deleted = ?", models.ApplicationApproved, false).Count(&approvedApps)
	db.Model(&models.MembershipApplication{}).Where("status = ? AND is_deleted = ?", models.ApplicationRejected, false).Count(&rejectedApps)

	var totalCourses, publishedCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)

	var enrollments, completions, certificates int64
	db.Model(&courseModels.UserProgress{}).Count(&enrollments)
	db.Model(&courseModels.UserProgress{}).Where("certificate_earned = ?", true).Count(&completions)
	db.Model(&courseModels.Certificate{}).Where("is_valid = ?", true).Count(&certificates)

	var quizAttempts, quizPasses int64
	db.Model(&courseModels.QuizResult{}).Count(&quizAttempts)
	db.Model(&courseModels.QuizResult{}).Where("passed = ?", true).Count(&quizPasses)

	// Per-course enrollment and average progress
	type CourseStats struct {
		CourseID    uint    `json:"course_id"`
		Title       string  `json:"title"`
		Enrollments int64   `json:"enrollments"`
		AvgProgress float64 `json:"avg_progress"`
		Completions int64   `json:"completions"`
	}

	var courses []courseModels.Course
	db.Where("is_deleted = ?", false).Find(&courses)

	courseStats := make([]CourseStats, len(courses))
	for i, course := range courses {
		stats := CourseStats{CourseID: course.ID, Title: course.Title}
		db.Model(&courseModels.UserProgress{}).Where("course_id = ?", course.ID).Count(&stats.Enrollments)
		db.Model(&courseModels.UserProgress{}).Where("course_id = ? AND certificate_earned = ?", course.ID, true).Count(&stats.Completions)
		if stats.Enrollments > 0 {
			db.Model(&courseModels.UserProgress{}).
				Where("course_id = ?", course.ID).
				Select("AVG(overall_progress)").
				Scan(&stats.AvgProgress)
		}
		courseStats[i] = stats
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":   totalUsers,
			"pending": pendingUsers,
			"members": members,
		},
		"applications": fiber.Map{
			"pending":  pendingApps,
			"approved": approvedApps,
			"rejected": rejectedApps,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"published": publishedCourses,
			"stats":     courseStats,
		},
		"learning": fiber.Map{
			"enrollments":        enrollments,
			"completions":        completions,
			"valid_certificates": certificates,
			"quiz_attempts":      quizAttempts,
			"quiz_passes":        quizPasses,
		},
	})
}
