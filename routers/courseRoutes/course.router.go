package courseRoutes

import (
	controllers "oakridge/controllers/course"
	"oakridge/middleware"
	"oakridge/models"
	courseValidator "oakridge/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the member-facing course routes. Approved members
// and admins only; pending users must get their application approved first.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleMember, models.RoleAdmin))

	// Static paths registered before the :id routes
	courseGroup.Get("/list", courseValidator.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/enrollments", controllers.GetUserEnrollments)
	courseGroup.Get("/certificates", controllers.GetUserCertificates)

	courseGroup.Get("/:id", courseValidator.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/:id/enroll", courseValidator.CourseID(), controllers.EnrollInCourse)
	courseGroup.Get("/:id/progress", courseValidator.CourseID(), controllers.GetUserProgress)

	courseGroup.Get("/:id/module/:module_id", courseValidator.CourseID(), courseValidator.ModuleID(), controllers.GetModuleContent)
	courseGroup.Post("/:id/module/:module_id/complete", courseValidator.CourseID(), courseValidator.ModuleID(), controllers.CompleteModule)

	courseGroup.Get("/:id/quiz", courseValidator.CourseID(), controllers.GetCourseQuiz)
	courseGroup.Post("/:id/quiz/submit", courseValidator.CourseID(), courseValidator.SubmitQuiz(), controllers.SubmitQuiz)
	courseGroup.Get("/:id/quiz/attempts", courseValidator.CourseID(), controllers.GetQuizAttempts)
}
