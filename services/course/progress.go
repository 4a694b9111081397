package courseService

import (
	"errors"
	"math"

	courseModels "oakridge/models/course"

	"gorm.io/gorm"
)

// CompleteModule records a completed module for an enrolled user and
// recomputes the overall percentage over the course's published modules.
// Re-completing a module is a no-op for the set but still recomputes.
// CertificateEarned is never touched here: finishing every module alone does
// not award a certificate, the course quiz must also be passed.
func CompleteModule(db *gorm.DB, userID, courseID, moduleID uint) (*courseModels.UserProgress, error) {
	progress, err := GetProgress(db, userID, courseID)
	if err != nil {
		return nil, err
	}

	var module courseModels.CourseModule
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?",
		moduleID, courseID, false, true).First(&module).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}

	completion := courseModels.ModuleCompletion{
		UserID:   userID,
		CourseID: courseID,
		ModuleID: moduleID,
	}
	if err := db.Where(courseModels.ModuleCompletion{UserID: userID, ModuleID: moduleID}).
		FirstOrCreate(&completion).Error; err != nil {
		return nil, err
	}

	percent, err := computeOverallProgress(db, userID, courseID)
	if err != nil {
		return nil, err
	}

	progress.OverallProgress = percent
	if err := db.Model(&courseModels.UserProgress{}).
		Where("id = ?", progress.ID).
		Update("overall_progress", percent).Error; err != nil {
		return nil, err
	}

	return progress, nil
}

// CompletedModuleIDs returns the IDs of modules the user has completed in a course.
func CompletedModuleIDs(db *gorm.DB, userID, courseID uint) ([]uint, error) {
	var completions []courseModels.ModuleCompletion
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&completions).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, len(completions))
	for i, c := range completions {
		ids[i] = c.ModuleID
	}
	return ids, nil
}

// AllModulesCompleted reports whether the user has completed every published
// module of the course. A course with no published modules counts as incomplete.
func AllModulesCompleted(db *gorm.DB, userID, courseID uint) (bool, error) {
	total, completed, err := moduleCounts(db, userID, courseID)
	if err != nil {
		return false, err
	}
	return total > 0 && completed >= total, nil
}

func computeOverallProgress(db *gorm.DB, userID, courseID uint) (int, error) {
	total, completed, err := moduleCounts(db, userID, courseID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(float64(completed) / float64(total) * 100)), nil
}

// moduleCounts counts both sides of the percentage over the same module set.
// Completions are joined against published, non-deleted modules so that
// unpublishing or deleting a module a user already finished drops it from
// numerator and denominator together; the percentage stays within 0-100.
func moduleCounts(db *gorm.DB, userID, courseID uint) (total int64, completed int64, err error) {
	if err = db.Model(&courseModels.CourseModule{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&total).Error; err != nil {
		return
	}
	err = db.Model(&courseModels.ModuleCompletion{}).
		Joins("JOIN course_modules ON course_modules.id = module_completions.module_id").
		Where("module_completions.user_id = ? AND module_completions.course_id = ?", userID, courseID).
		Where("course_modules.is_published = ? AND course_modules.is_deleted = ?", true, false).
		Count(&completed).Error
	return
}
