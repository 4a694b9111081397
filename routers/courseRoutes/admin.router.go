package courseRoutes

import (
	controllers "oakridge/controllers/course"
	"oakridge/middleware"
	"oakridge/models"
	courseValidator "oakridge/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin))

	// Course CRUD
	adminGroup.Post("/create", courseValidator.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", controllers.AdminGetAllCourses)
	adminGroup.Put("/:id", courseValidator.CourseID(), courseValidator.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", courseValidator.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", courseValidator.CourseID(), courseValidator.PublishCourse(), controllers.AdminPublishCourse)
	adminGroup.Get("/:id/enrollments", courseValidator.CourseID(), controllers.AdminGetCourseEnrollments)

	// Module management
	adminGroup.Post("/:id/module", courseValidator.CourseID(), courseValidator.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Get("/:id/modules", courseValidator.CourseID(), controllers.AdminListModules)
	adminGroup.Put("/:id/module/:module_id", courseValidator.CourseID(), courseValidator.ModuleID(), courseValidator.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:id/module/:module_id", courseValidator.CourseID(), courseValidator.ModuleID(), controllers.AdminDeleteModule)

	// Quiz management
	adminGroup.Post("/:id/quiz", courseValidator.CourseID(), courseValidator.UpsertQuiz(), controllers.AdminUpsertQuiz)
	adminGroup.Get("/:id/quiz/questions", courseValidator.CourseID(), controllers.AdminListQuizQuestions)
	adminGroup.Post("/:id/quiz/question", courseValidator.CourseID(), courseValidator.QuizQuestion(), controllers.AdminAddQuizQuestion)
	adminGroup.Delete("/quiz/question/:question_id", courseValidator.QuestionID(), controllers.AdminDeleteQuizQuestion)
}
