package verifyRoutes

import (
	verifyController "oakridge/controllers/verify"

	"github.com/gofiber/fiber/v2"
)

// SetupVerifyRoutes wires the public certificate verification endpoint.
// No authentication: employers check certificates without an account.
func SetupVerifyRoutes(app *fiber.App) {
	app.Get("/verify/:ref", verifyController.VerifyCertificate)
}
