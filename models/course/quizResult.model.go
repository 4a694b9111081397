package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizResult is an append-only record of a single quiz submission. Every
// attempt is retained; Answers maps question ID to the submitted answer text
// and is opaque to everything downstream of grading.
type QuizResult struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	CourseID      uint           `json:"course_id" gorm:"index;not null"`
	Score         int            `json:"score"`        // points earned
	TotalPoints   int            `json:"total_points"` // points available
	ScorePercent  int            `json:"score_percent"`
	Passed        bool           `json:"passed" gorm:"default:false"`
	Answers       datatypes.JSON `json:"answers"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
}
