package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"oakridge/config"
	"oakridge/database"
	"oakridge/middleware"
	"oakridge/models"
	courseModels "oakridge/models/course"
	"oakridge/routers/courseRoutes"
	"oakridge/routers/verifyRoutes"

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

	config.AppConfig = &config.Config{
		JWTKey:                  "test-secret",
		CertPollAttempts:        1,
		CertPollInitialSeconds:  0,
		CertPollIntervalSeconds: 0,
	}

	dsn := fmt.Sprintf("file:flowdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	verifyRoutes.SetupVerifyRoutes(app)
	return app, db
}

func seedMember(t *testing.T, db *gorm.DB, role string) (*models.User, string) {
	t.Helper()

	user := models.User{
		Name:          "Jane Learner",
		Email:         fmt.Sprintf("jane-%d@example.com", testDBSeq.Load()),
		Role:          role,
		OAuthProvider: "google",
		OAuthSubject:  fmt.Sprintf("sub-%d", testDBSeq.Load()),
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return &user, token
}

func seedCourseWithQuiz(t *testing.T, db *gorm.DB, moduleCount int) (*courseModels.Course, []courseModels.CourseModule, []courseModels.QuizQuestion) {
	t.Helper()

	course := courseModels.Course{
		Title:       "Advanced Go",
		Description: "Concurrency and beyond",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)

	modules := make([]courseModels.CourseModule, moduleCount)
	for i := range modules {
		modules[i] = courseModels.CourseModule{
			CourseID:    course.ID,
			Title:       fmt.Sprintf("Module %d", i+1),
			Content:     "# Lesson",
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&modules[i]).Error)
	}

	quiz := courseModels.Quiz{CourseID: course.ID, Title: "Final Quiz", PassingScore: 70}
	require.NoError(t, db.Create(&quiz).Error)

	questions := make([]courseModels.QuizQuestion, 2)
	for i := range questions {
		questions[i] = courseModels.QuizQuestion{
			QuizID:        quiz.ID,
			QuestionText:  fmt.Sprintf("Question %d?", i+1),
			QuestionType:  courseModels.QuestionShortAnswer,
			CorrectAnswer: fmt.Sprintf("answer-%d", i+1),
			Points:        1,
			OrderIndex:    i,
		}
		require.NoError(t, db.Create(&questions[i]).Error)
	}

	return &course, modules, questions
}

func request(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp.StatusCode, parsed
}

func TestCourseCompletionFlow(t *testing.T) {
	app, db := setupApp(t)
	_, token := seedMember(t, db, models.RoleMember)
	course, modules, questions := seedCourseWithQuiz(t, db, 2)

	base := fmt.Sprintf("/course/%d", course.ID)

	// Enroll
	status, _ := request(t, app, "POST", base+"/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	// Complete both modules
	for _, m := range modules {
		status, body := request(t, app, "POST", fmt.Sprintf("%s/module/%d/complete", base, m.ID), token, nil)
		require.Equal(t, fiber.StatusOK, status, body["message"])
	}

	status, body := request(t, app, "GET", base+"/progress", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	progress := body["data"].(map[string]interface{})["progress"].(map[string]interface{})
	assert.Equal(t, float64(100), progress["overall_progress"])
	assert.Equal(t, false, progress["certificate_earned"])

	// Pass the quiz; the certificate is issued in the same request
	answers := map[string]string{}
	for i, q := range questions {
		answers[fmt.Sprintf("%d", q.ID)] = fmt.Sprintf("answer-%d", i+1)
	}
	status, body = request(t, app, "POST", base+"/quiz/submit", token, map[string]interface{}{"answers": answers})
	require.Equal(t, fiber.StatusOK, status, body["message"])

	data := body["data"].(map[string]interface{})
	result := data["result"].(map[string]interface{})
	assert.Equal(t, true, result["passed"])
	assert.Equal(t, float64(100), result["score_percent"])

	cert := data["certificate"].(map[string]interface{})
	certID := cert["certificate_id"].(string)
	assert.Regexp(t, `^OOG-\d{4}-\d{4}-[0-9A-F]{8}$`, certID)

	// The new certificate verifies publicly
	status, body = request(t, app, "GET", "/verify/"+certID, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]interface{})["valid"])
}

func TestQuizPassWithoutAllModulesDoesNotIssueCertificate(t *testing.T) {
	app, db := setupApp(t)
	_, token := seedMember(t, db, models.RoleMember)
	course, _, questions := seedCourseWithQuiz(t, db, 2)

	base := fmt.Sprintf("/course/%d", course.ID)

	status, _ := request(t, app, "POST", base+"/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	answers := map[string]string{}
	for i, q := range questions {
		answers[fmt.Sprintf("%d", q.ID)] = fmt.Sprintf("answer-%d", i+1)
	}
	status, body := request(t, app, "POST", base+"/quiz/submit", token, map[string]interface{}{"answers": answers})
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["result"].(map[string]interface{})["passed"])
	_, issued := data["certificate"]
	assert.False(t, issued)
}

func TestFailedQuizDoesNotIssueCertificate(t *testing.T) {
	app, db := setupApp(t)
	_, token := seedMember(t, db, models.RoleMember)
	course, modules, questions := seedCourseWithQuiz(t, db, 1)

	base := fmt.Sprintf("/course/%d", course.ID)

	status, _ := request(t, app, "POST", base+"/enroll", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = request(t, app, "POST", fmt.Sprintf("%s/module/%d/complete", base, modules[0].ID), token, nil)
	require.Equal(t, fiber.StatusOK, status)

	answers := map[string]string{fmt.Sprintf("%d", questions[0].ID): "wrong"}
	status, body := request(t, app, "POST", base+"/quiz/submit", token, map[string]interface{}{"answers": answers})
	require.Equal(t, fiber.StatusOK, status)

	data := body["data"].(map[string]interface{})
	assert.Equal(t, false, data["result"].(map[string]interface{})["passed"])
	_, issued := data["certificate"]
	assert.False(t, issued)
}

func TestCourseRoutesRejectPendingUsers(t *testing.T) {
	app, db := setupApp(t)
	_, token := seedMember(t, db, models.RolePending)
	course, _, _ := seedCourseWithQuiz(t, db, 1)

	status, _ := request(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCourseRoutesRequireToken(t *testing.T) {
	app, db := setupApp(t)
	course, _, _ := seedCourseWithQuiz(t, db, 1)
	_ = db

	status, _ := request(t, app, "GET", fmt.Sprintf("/course/%d", course.ID), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
