package courseService

import (
	"testing"

	courseModels "oakridge/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteModuleRecomputesPercentage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	course := seedCourse(t, db, "Go Basics", true)

	modules := make([]*courseModels.CourseModule, 4)
	for i := range modules {
		modules[i] = seedModule(t, db, course.ID, "Module", i, true)
	}

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	progress, err := CompleteModule(db, user.ID, course.ID, modules[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 25, progress.OverallProgress)

	progress, err = CompleteModule(db, user.ID, course.ID, modules[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.OverallProgress)
}

func TestCompleteModuleTwiceIsNoOp(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob")
	course := seedCourse(t, db, "Go Basics", true)
	m1 := seedModule(t, db, course.ID, "One", 0, true)
	seedModule(t, db, course.ID, "Two", 1, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	progress, err := CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.OverallProgress)

	progress, err = CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.OverallProgress)

	ids, err := CompletedModuleIDs(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{m1.ID}, ids)
}

func TestCompleteModulePercentageRounds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "carol")
	course := seedCourse(t, db, "Go Basics", true)

	m1 := seedModule(t, db, course.ID, "One", 0, true)
	m2 := seedModule(t, db, course.ID, "Two", 1, true)
	seedModule(t, db, course.ID, "Three", 2, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	progress, err := CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	assert.Equal(t, 33, progress.OverallProgress)

	progress, err = CompleteModule(db, user.ID, course.ID, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, progress.OverallProgress)
}

func TestCompleteModuleIgnoresUnpublishedModules(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "dave")
	course := seedCourse(t, db, "Go Basics", true)

	published := seedModule(t, db, course.ID, "Published", 0, true)
	draft := seedModule(t, db, course.ID, "Draft", 1, false)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	// Drafts do not count toward the denominator
	progress, err := CompleteModule(db, user.ID, course.ID, published.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.OverallProgress)

	// And cannot be completed
	_, err = CompleteModule(db, user.ID, course.ID, draft.ID)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestCompleteModuleRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "erin")
	course := seedCourse(t, db, "Go Basics", true)
	module := seedModule(t, db, course.ID, "One", 0, true)

	_, err := CompleteModule(db, user.ID, course.ID, module.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestCompleteModuleFromAnotherCourse(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "frank")
	course := seedCourse(t, db, "Go Basics", true)
	other := seedCourse(t, db, "Rust Basics", true)
	foreign := seedModule(t, db, other.ID, "Ownership", 0, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteModule(db, user.ID, course.ID, foreign.ID)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestCompleteModuleNeverAwardsCertificate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "grace")
	course := seedCourse(t, db, "Go Basics", true)
	m1 := seedModule(t, db, course.ID, "One", 0, true)
	m2 := seedModule(t, db, course.ID, "Two", 1, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	_, err = CompleteModule(db, user.ID, course.ID, m2.ID)
	require.NoError(t, err)

	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.OverallProgress)
	assert.False(t, progress.CertificateEarned)
}

func TestAllModulesCompleted(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "heidi")
	course := seedCourse(t, db, "Go Basics", true)
	m1 := seedModule(t, db, course.ID, "One", 0, true)
	m2 := seedModule(t, db, course.ID, "Two", 1, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	done, err := AllModulesCompleted(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	done, err = AllModulesCompleted(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = CompleteModule(db, user.ID, course.ID, m2.ID)
	require.NoError(t, err)
	done, err = AllModulesCompleted(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestCompleteModuleAfterUnpublishingCompletedModule(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "judy")
	course := seedCourse(t, db, "Go Basics", true)

	m1 := seedModule(t, db, course.ID, "One", 0, true)
	m2 := seedModule(t, db, course.ID, "Two", 1, true)
	m3 := seedModule(t, db, course.ID, "Three", 2, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)
	progress, err := CompleteModule(db, user.ID, course.ID, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, progress.OverallProgress)

	// Unpublishing a module the user already finished removes it from both
	// sides of the percentage; the stale completion must not push past 100.
	require.NoError(t, db.Model(m2).Update("is_published", false).Error)

	progress, err = CompleteModule(db, user.ID, course.ID, m3.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.OverallProgress)

	done, err := AllModulesCompleted(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestProgressExcludesDeletedModuleCompletions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "kate")
	course := seedCourse(t, db, "Go Basics", true)

	m1 := seedModule(t, db, course.ID, "One", 0, true)
	m2 := seedModule(t, db, course.ID, "Two", 1, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteModule(db, user.ID, course.ID, m1.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(m1).Update("is_deleted", true).Error)

	// The remaining published module is untouched, so the course is not done
	// even though a completion row still exists for the deleted module.
	done, err := AllModulesCompleted(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, done)

	progress, err := CompleteModule(db, user.ID, course.ID, m2.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, progress.OverallProgress)
}

func TestAllModulesCompletedEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ivan")
	course := seedCourse(t, db, "Empty Course", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	done, err := AllModulesCompleted(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, done)
}
