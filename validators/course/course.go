package courseValidator

import (
	"strconv"
	"strings"

	"oakridge/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func parseID(c *fiber.Ctx, name, label string) (int, bool, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, label+" is required!", nil)
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
	}

	return id, true, nil
}

// CourseID validates the :id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "id", "Course ID")
		if !ok {
			return resp
		}
		c.Locals("courseID", id)
		return c.Next()
	}
}

// ModuleID validates the :module_id path parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "module_id", "Module ID")
		if !ok {
			return resp
		}
		c.Locals("moduleID", id)
		return c.Next()
	}
}

// QuestionID validates the :question_id path parameter
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok, resp := parseID(c, "question_id", "Question ID")
		if !ok {
			return resp
		}
		c.Locals("questionID", id)
		return c.Next()
	}
}

// CourseList validates pagination query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// SubmitQuiz validates a quiz submission body. Answer keys arrive as string
// question IDs and are converted to the numeric form grading expects.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers map[string]string `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers are required!", nil)
		}

		answers := make(map[uint]string, len(reqData.Answers))
		errors := make(map[string]string)
		for key, value := range reqData.Answers {
			id, err := strconv.Atoi(key)
			if err != nil || id <= 0 {
				errors[key] = "Invalid question ID!"
				continue
			}
			answers[uint(id)] = value
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuizAnswers", answers)
		return c.Next()
	}
}

// CreateCourse validates a new course
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description" validate:"required,min=5"`
			Author      string `json:"author"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "Description":
					errors["description"] = "Description must be at least 5 characters long!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a course edit
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       *string `json:"title" validate:"omitempty,min=3"`
			Description *string `json:"description" validate:"omitempty,min=5"`
			Author      *string `json:"author"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "Description":
					errors["description"] = "Description must be at least 5 characters long!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// PublishCourse validates the publish toggle
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Publish bool `json:"publish"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

// CreateModule validates a new course module
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title" validate:"required,min=3"`
			Content    string `json:"content" validate:"required"`
			OrderIndex int    `json:"order_index" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "Content":
					errors["content"] = "Content is required!"
				case "OrderIndex":
					errors["order_index"] = "Order index must not be negative!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates a module edit
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      *string `json:"title" validate:"omitempty,min=3"`
			Content    *string `json:"content"`
			OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
			Publish    *bool   `json:"publish"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "OrderIndex":
					errors["order_index"] = "Order index must not be negative!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// UpsertQuiz validates quiz creation or update
func UpsertQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=3"`
			PassingScore int    `json:"passing_score" validate:"gte=0,lte=100"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "Title":
					errors["title"] = "Title must be at least 3 characters long!"
				case "PassingScore":
					errors["passing_score"] = "Passing score must be between 0 and 100!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// QuizQuestion validates a new quiz question. MCQ questions must carry at
// least two options and the correct answer must be one of them.
func QuizQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionText  string   `json:"question_text" validate:"required,min=5"`
			QuestionType  string   `json:"question_type" validate:"required,oneof=MCQ SHORT_ANSWER"`
			Options       []string `json:"options" validate:"required_if=QuestionType MCQ"`
			CorrectAnswer string   `json:"correct_answer" validate:"required"`
			Points        int      `json:"points" validate:"gte=1"`
			OrderIndex    int      `json:"order_index" validate:"gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				switch fe.Field() {
				case "QuestionText":
					errors["question_text"] = "Question text must be at least 5 characters long!"
				case "QuestionType":
					errors["question_type"] = "Question type must be MCQ or SHORT_ANSWER!"
				case "Options":
					errors["options"] = "Options are required for MCQ questions!"
				case "CorrectAnswer":
					errors["correct_answer"] = "Correct answer is required!"
				case "Points":
					errors["points"] = "Points must be at least 1!"
				case "OrderIndex":
					errors["order_index"] = "Order index must not be negative!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.QuestionType == "MCQ" {
			if len(reqData.Options) < 2 {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"options": "MCQ questions need at least 2 options!",
				})
			}
			found := false
			for _, opt := range reqData.Options {
				if opt == reqData.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"correct_answer": "Correct answer must be one of the options!",
				})
			}
		}

		c.Locals("validatedQuizQuestion", reqData)
		return c.Next()
	}
}
