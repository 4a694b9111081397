package courseService

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	courseModels "oakridge/models/course"

	"gorm.io/gorm"
)

// GradeQuiz scores a submission against the quiz's stored answer keys and
// appends a QuizResult row. Every attempt is retained. Answers are compared
// by exact string match after trimming surrounding whitespace. Points are
// earned per correctly answered question (summing each question's Points
// field), while pass/fail is decided on the percentage of correct answers
// against the quiz's passing score.
//
// GradeQuiz never issues certificates; the caller checks module completion
// and triggers issuance separately.
func GradeQuiz(db *gorm.DB, userID uint, quiz *courseModels.Quiz, answers map[uint]string) (*courseModels.QuizResult, error) {
	var questions []courseModels.QuizQuestion
	if err := db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuizUnanswerable
	}

	matches := 0
	earned := 0
	totalPoints := 0
	for _, q := range questions {
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return nil, ErrQuizUnanswerable
		}
		totalPoints += q.Points
		if strings.TrimSpace(answers[q.ID]) == strings.TrimSpace(q.CorrectAnswer) {
			matches++
			earned += q.Points
		}
	}

	scorePercent := int(math.Round(float64(matches) / float64(len(questions)) * 100))

	// JSON object keys must be strings
	answerBlob := make(map[string]string, len(answers))
	for id, text := range answers {
		answerBlob[strconv.FormatUint(uint64(id), 10)] = text
	}
	rawAnswers, err := json.Marshal(answerBlob)
	if err != nil {
		return nil, err
	}

	var attemptCount int64
	if err := db.Model(&courseModels.QuizResult{}).
		Where("user_id = ? AND quiz_id = ?", userID, quiz.ID).
		Count(&attemptCount).Error; err != nil {
		return nil, err
	}

	result := courseModels.QuizResult{
		UserID:        userID,
		QuizID:        quiz.ID,
		CourseID:      quiz.CourseID,
		Score:         earned,
		TotalPoints:   totalPoints,
		ScorePercent:  scorePercent,
		Passed:        scorePercent >= quiz.PassingScore,
		Answers:       rawAnswers,
		AttemptNumber: int(attemptCount) + 1,
	}

	if err := db.Create(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// QuizForCourse fetches the course's quiz.
func QuizForCourse(db *gorm.DB, courseID uint) (*courseModels.Quiz, error) {
	var quiz courseModels.Quiz
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}
