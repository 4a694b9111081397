package courseService

import (
	"errors"
	"time"

	"oakridge/models"
	courseModels "oakridge/models/course"

	"gorm.io/gorm"
)

// Enroll creates the per-user progress record for a course. Enrollment is
// idempotent: an existing record is returned unchanged. The composite unique
// index on (user_id, course_id) closes the lookup-then-insert race, so a
// duplicate-key error from a concurrent enroll is also the "already
// enrolled" case.
func Enroll(db *gorm.DB, userID, courseID uint) (*courseModels.UserProgress, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	var existing courseModels.UserProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		return &existing, nil
	}

	progress := courseModels.UserProgress{
		UserID:    userID,
		CourseID:  courseID,
		StartedAt: time.Now(),
	}

	if err := db.Create(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent enroll; return the winner's row.
			if ferr := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; ferr == nil {
				return &existing, nil
			}
		}
		return nil, err
	}

	return &progress, nil
}

// GetProgress fetches the progress record for an enrolled user.
func GetProgress(db *gorm.DB, userID, courseID uint) (*courseModels.UserProgress, error) {
	var progress courseModels.UserProgress
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &progress, nil
}
