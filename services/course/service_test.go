package courseService

import (
	"fmt"
	"sync/atomic"
	"testing"

	"oakridge/database"
	"oakridge/models"
	courseModels "oakridge/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database. Each test gets its own named
// shared-cache db so gorm's connection pool sees the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:          name,
		Email:         fmt.Sprintf("%s-%d@example.com", name, testDBSeq.Load()),
		Role:          models.RoleMember,
		OAuthProvider: "google",
		OAuthSubject:  fmt.Sprintf("sub-%s-%d", name, testDBSeq.Load()),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCourse(t *testing.T, db *gorm.DB, title string, published bool) *courseModels.Course {
	t.Helper()
	course := courseModels.Course{
		Title:       title,
		Description: "Seed course for tests",
		Author:      "Test Author",
		IsPublished: published,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

func seedModule(t *testing.T, db *gorm.DB, courseID uint, title string, order int, published bool) *courseModels.CourseModule {
	t.Helper()
	module := courseModels.CourseModule{
		CourseID:    courseID,
		Title:       title,
		Content:     "# " + title,
		OrderIndex:  order,
		IsPublished: published,
	}
	require.NoError(t, db.Create(&module).Error)
	return &module
}

func seedQuiz(t *testing.T, db *gorm.DB, courseID uint, passingScore int) *courseModels.Quiz {
	t.Helper()
	quiz := courseModels.Quiz{
		CourseID:     courseID,
		Title:        "Final Quiz",
		PassingScore: passingScore,
	}
	require.NoError(t, db.Create(&quiz).Error)
	return &quiz
}

func seedQuestion(t *testing.T, db *gorm.DB, quizID uint, text, answer string, points, order int) *courseModels.QuizQuestion {
	t.Helper()
	question := courseModels.QuizQuestion{
		QuizID:        quizID,
		QuestionText:  text,
		QuestionType:  courseModels.QuestionShortAnswer,
		CorrectAnswer: answer,
		Points:        points,
		OrderIndex:    order,
	}
	require.NoError(t, db.Create(&question).Error)
	return &question
}

// zeroDelayPolicy keeps certificate tests fast.
func zeroDelayPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 2, InitialDelay: 0, Interval: 0}
}
