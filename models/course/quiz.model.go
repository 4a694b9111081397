package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question types
const (
	QuestionMCQ         = "MCQ"
	QuestionShortAnswer = "SHORT_ANSWER"
)

// Quiz is the graded assessment for a course. One quiz per course.
type Quiz struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:70"` // percentage 0-100
	IsDeleted    bool   `gorm:"default:false"`
}

// QuizQuestion is a single question within a quiz. Options holds the choice
// list for MCQ questions; CorrectAnswer is always plain text regardless of type.
type QuizQuestion struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text"`
	QuestionType  string         `json:"question_type" gorm:"default:'MCQ'"` // MCQ, SHORT_ANSWER
	Options       datatypes.JSON `json:"options"`                            // []string, MCQ only
	CorrectAnswer string         `json:"-"`                                  // never serialized to learners
	Points        int            `json:"points" gorm:"default:1"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}
