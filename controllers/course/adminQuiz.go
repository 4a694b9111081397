package controllers

import (
	"encoding/json"

	"oakridge/database"
	"oakridge/middleware"
	courseModels "oakridge/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminUpsertQuiz creates or updates the quiz for a course (one per course)
func AdminUpsertQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title" validate:"required,min=3"`
		PassingScore int    `json:"passing_score" validate:"gte=0,lte=100"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var quiz courseModels.Quiz
	err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error
	if err == gorm.ErrRecordNotFound {
		quiz = courseModels.Quiz{
			CourseID:     uint(courseID),
			Title:        reqData.Title,
			PassingScore: reqData.PassingScore,
		}
		if err := database.Database.Db.Create(&quiz).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	if err := database.Database.Db.Model(&quiz).Updates(map[string]interface{}{
		"title":         reqData.Title,
		"passing_score": reqData.PassingScore,
	}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// AdminAddQuizQuestion adds a question to a course's quiz
func AdminAddQuizQuestion(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedQuizQuestion").(*struct {
		QuestionText  string   `json:"question_text" validate:"required,min=5"`
		QuestionType  string   `json:"question_type" validate:"required,oneof=MCQ SHORT_ANSWER"`
		Options       []string `json:"options" validate:"required_if=QuestionType MCQ"`
		CorrectAnswer string   `json:"correct_answer" validate:"required"`
		Points        int      `json:"points" validate:"gte=1"`
		OrderIndex    int      `json:"order_index" validate:"gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Create the course quiz first!", nil)
	}

	question := courseModels.QuizQuestion{
		QuizID:        quiz.ID,
		QuestionText:  reqData.QuestionText,
		QuestionType:  reqData.QuestionType,
		CorrectAnswer: reqData.CorrectAnswer,
		Points:        reqData.Points,
		OrderIndex:    reqData.OrderIndex,
	}

	if reqData.QuestionType == courseModels.QuestionMCQ {
		rawOptions, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options payload!", nil)
		}
		question.Options = rawOptions
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// AdminListQuizQuestions lists quiz questions including correct answers
func AdminListQuizQuestions(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no quiz!", nil)
	}

	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions)

	// Admin view includes the answer key, which the model hides from JSON
	type QuestionWithAnswer struct {
		courseModels.QuizQuestion
		CorrectAnswer string `json:"correct_answer"`
	}
	result := make([]QuestionWithAnswer, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithAnswer{QuizQuestion: q, CorrectAnswer: q.CorrectAnswer}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}

// AdminDeleteQuizQuestion soft deletes a quiz question
func AdminDeleteQuizQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.QuizQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if err := database.Database.Db.Model(&question).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
