package course

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks a user's enrollment in a course. One row per
// (user, course), enforced by the composite unique index so concurrent
// enrolls cannot duplicate it.
type UserProgress struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	CourseID          uint       `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course;not null"`
	OverallProgress   int        `json:"overall_progress" gorm:"default:0"` // rounded percentage 0-100
	CertificateEarned bool       `json:"certificate_earned" gorm:"default:false"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at"`
}

// ModuleCompletion records one completed module for a user. The set of
// completed modules for a course is the set of these rows; the composite
// unique index gives re-completion its no-op set semantics.
type ModuleCompletion struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_completion_user_module;not null"`
	CourseID uint `json:"course_id" gorm:"index;not null"`
	ModuleID uint `json:"module_id" gorm:"uniqueIndex:idx_completion_user_module;not null"`
}
