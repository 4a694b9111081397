package verifyController

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"oakridge/database"
	"oakridge/models"
	courseModels "oakridge/models/course"
	courseService "oakridge/services/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:verifydb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/verify/:ref", VerifyCertificate)
	return app, db
}

func seedCertificate(t *testing.T, db *gorm.DB, issued time.Time, isValid bool) *courseModels.Certificate {
	t.Helper()

	user := models.User{
		Name:          "Jane Learner",
		Email:         fmt.Sprintf("jane-%d@example.com", testDBSeq.Load()),
		Role:          models.RoleMember,
		OAuthProvider: "google",
		OAuthSubject:  fmt.Sprintf("sub-%d", testDBSeq.Load()),
	}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{
		Title:       "Advanced Go",
		Description: "Concurrency and beyond",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	cert := courseModels.Certificate{
		UserID:         user.ID,
		CourseID:       course.ID,
		CertificateID:  courseService.NewCertificateID(user.ID, course.ID),
		RegistryNumber: courseService.NewRegistryNumber(issued),
		UserName:       user.Name,
		CourseName:     course.Title,
		IssuedDate:     issued,
		ValidUntil:     issued.AddDate(0, 0, courseService.CertificateValidityDays),
		IsValid:        isValid,
	}
	require.NoError(t, db.Create(&cert).Error)
	return &cert
}

func doVerify(t *testing.T, app *fiber.App, ref string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", "/verify/"+ref, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestVerifyCertificateValid(t *testing.T) {
	app, db := setupApp(t)
	cert := seedCertificate(t, db, time.Now(), true)

	status, body := doVerify(t, app, cert.CertificateID)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["status"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, cert.CertificateID, data["certificate_id"])
	assert.Equal(t, cert.RegistryNumber, data["registry_number"])
	assert.Equal(t, "Jane Learner", data["user_name"])
	assert.Equal(t, "Advanced Go", data["course_name"])
}

func TestVerifyCertificateByRegistryNumber(t *testing.T) {
	app, db := setupApp(t)
	cert := seedCertificate(t, db, time.Now(), true)

	status, body := doVerify(t, app, cert.RegistryNumber)

	assert.Equal(t, fiber.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, cert.CertificateID, data["certificate_id"])
}

func TestVerifyCertificateExpired(t *testing.T) {
	app, db := setupApp(t)
	cert := seedCertificate(t, db, time.Now().AddDate(-2, 0, 0), true)

	status, body := doVerify(t, app, cert.CertificateID)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["status"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["valid"])
	assert.Equal(t, true, data["expired"])
}

func TestVerifyCertificateInvalidated(t *testing.T) {
	app, db := setupApp(t)
	cert := seedCertificate(t, db, time.Now(), false)

	status, body := doVerify(t, app, cert.CertificateID)

	assert.Equal(t, fiber.StatusNotFound, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["valid"])
}

func TestVerifyCertificateUnknownReference(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doVerify(t, app, "OOG-0000-0000-DEADBEEF")

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, false, body["status"])
}
