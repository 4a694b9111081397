package verifyController

import (
	"errors"

	"oakridge/database"
	"oakridge/middleware"
	courseService "oakridge/services/course"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public, unauthenticated certificate lookup. It
// accepts either a certificate ID or a registry number and reports validity
// plus display metadata. An unknown reference is a not-found response, never
// an error.
func VerifyCertificate(c *fiber.Ctx) error {
	ref := c.Params("ref")

	cert, err := courseService.FindValidCertificate(database.Database.Db, ref)
	switch {
	case err == nil:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid.", fiber.Map{
			"valid":           true,
			"certificate_id":  cert.CertificateID,
			"registry_number": cert.RegistryNumber,
			"user_name":       cert.UserName,
			"course_name":     cert.CourseName,
			"issued_date":     cert.IssuedDate,
			"valid_until":     cert.ValidUntil,
		})
	case errors.Is(err, courseService.ErrCertificateExpired):
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Certificate has expired.", fiber.Map{
			"valid":       false,
			"expired":     true,
			"valid_until": cert.ValidUntil,
		})
	case errors.Is(err, courseService.ErrCertificateMissing):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No certificate found for this reference.", fiber.Map{
			"valid": false,
		})
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Verification failed, please try again.", nil)
	}
}
