package controllers

import (
	"errors"
	"log"
	"time"

	"oakridge/config"
	"oakridge/database"
	"oakridge/middleware"
	courseModels "oakridge/models/course"
	courseService "oakridge/services/course"
	"oakridge/utils"

	"github.com/gofiber/fiber/v2"
)

func retryPolicyFromConfig() courseService.RetryPolicy {
	cfg := config.AppConfig
	if cfg == nil {
		return courseService.DefaultRetryPolicy()
	}
	return courseService.RetryPolicy{
		MaxAttempts:  cfg.CertPollAttempts,
		InitialDelay: time.Duration(cfg.CertPollInitialSeconds) * time.Second,
		Interval:     time.Duration(cfg.CertPollIntervalSeconds) * time.Second,
	}
}

// GetCourseQuiz returns the course quiz with questions, correct answers stripped
func GetCourseQuiz(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	if _, err := courseService.GetProgress(database.Database.Db, user.ID, uint(courseID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	quiz, err := courseService.QuizForCourse(database.Database.Db, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no quiz!", nil)
	}

	// CorrectAnswer carries `json:"-"` so questions serialize safely here
	var questions []courseModels.QuizQuestion
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": questions,
	})
}

// SubmitQuiz grades a quiz submission and stores the attempt. When the
// attempt passes and every module of the course is already complete, the
// completion certificate is issued as part of the same request.
func SubmitQuiz(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	answers, ok := c.Locals("validatedQuizAnswers").(map[uint]string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if _, err := courseService.GetProgress(db, user.ID, uint(courseID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	quiz, err := courseService.QuizForCourse(db, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This course has no quiz!", nil)
	}

	result, err := courseService.GradeQuiz(db, user.ID, quiz, answers)
	if err != nil {
		if errors.Is(err, courseService.ErrQuizUnanswerable) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Quiz is not gradable, contact an administrator!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	response := fiber.Map{"result": result}

	if result.Passed {
		allDone, err := courseService.AllModulesCompleted(db, user.ID, uint(courseID))
		if err == nil && allDone {
			cert, err := courseService.IssueCertificate(db, retryPolicyFromConfig(), user.ID, uint(courseID))
			if errors.Is(err, courseService.ErrCertificateRevoked) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "A revoked certificate already exists for this course. Contact an administrator.", response)
			}
			if err != nil {
				// The progress row may already be flagged earned; surface the
				// issuance failure so the user can retry.
				log.Printf("Certificate issuance failed for user %d course %d: %v", user.ID, courseID, err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Quiz passed but certificate issuance failed. Please retry.", response)
			}
			response["certificate"] = cert
			utils.SendCertificateIssuedEmail(user.Email, user.Name, cert.CourseName, cert.CertificateID, cert.ValidUntil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", response)
}

// GetQuizAttempts lists the user's past attempts for a course quiz
func GetQuizAttempts(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var attempts []courseModels.QuizResult
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", user.ID, courseID).
		Order("attempt_number desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
		"total":    len(attempts),
	})
}
