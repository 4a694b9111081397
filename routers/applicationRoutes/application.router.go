package applicationRoutes

import (
	applicationController "oakridge/controllers/application"
	"oakridge/middleware"
	applicationValidator "oakridge/validators/application"

	"github.com/gofiber/fiber/v2"
)

// SetupApplicationRoutes wires the membership application flow. Any
// authenticated user can apply, including those still pending approval.
func SetupApplicationRoutes(app *fiber.App) {
	appGroup := app.Group("/application", middleware.JWTMiddleware)

	appGroup.Get("/questions", applicationController.GetQuestions)
	appGroup.Post("/submit", applicationValidator.SubmitApplication(), applicationController.SubmitApplication)
	appGroup.Get("/mine", applicationController.GetMyApplication)
}
