package adminRoutes

import (
	adminController "oakridge/controllers/admin"
	"oakridge/middleware"
	"oakridge/models"
	adminValidator "oakridge/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the admin panel routes: membership application
// review, user management, application question management and dashboard.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/dashboard", adminController.DashboardStats)

	adminGroup.Get("/applications", adminController.ListApplications)
	adminGroup.Post("/applications/:id/approve", adminValidator.ApplicationID(), adminController.ApproveApplication)
	adminGroup.Post("/applications/:id/reject", adminValidator.RejectApplication(), adminController.RejectApplication)

	adminGroup.Get("/users", adminValidator.UserList(), adminController.ListUsers)
	adminGroup.Patch("/users/:id/role", adminValidator.RoleChange(), adminController.UpdateUserRole)

	adminGroup.Get("/questions", adminController.ListQuestions)
	adminGroup.Post("/questions", adminValidator.CreateQuestion(), adminController.CreateQuestion)
	adminGroup.Put("/questions/:id", adminValidator.UpdateQuestion(), adminController.UpdateQuestion)
	adminGroup.Delete("/questions/:id", adminValidator.DeleteQuestion(), adminController.DeleteQuestion)
}
