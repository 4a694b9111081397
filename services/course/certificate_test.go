package courseService

import (
	"regexp"
	"testing"
	"time"

	courseModels "oakridge/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var certificateIDPattern = regexp.MustCompile(`^OOG-\d{4}-\d{4}-[0-9A-F]{8}$`)
var registryNumberPattern = regexp.MustCompile(`^REG-[0-9A-Z]+$`)

func TestIssueCertificateFallbackCreation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	cert, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)

	assert.Regexp(t, certificateIDPattern, cert.CertificateID)
	assert.Regexp(t, registryNumberPattern, cert.RegistryNumber)
	assert.Equal(t, user.Name, cert.UserName)
	assert.Equal(t, course.Title, cert.CourseName)
	assert.True(t, cert.IsValid)
	assert.Equal(t, cert.IssuedDate.AddDate(0, 0, CertificateValidityDays), cert.ValidUntil)

	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, progress.CertificateEarned)
	require.NotNil(t, progress.CompletedAt)
}

func TestIssueCertificateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "bob")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	first, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)

	second, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)

	assert.Equal(t, first.CertificateID, second.CertificateID)

	var count int64
	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestIssueCertificatePollFindsExistingRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "carol")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	issued := time.Now()
	existing := courseModels.Certificate{
		UserID:         user.ID,
		CourseID:       course.ID,
		CertificateID:  NewCertificateID(user.ID, course.ID),
		RegistryNumber: NewRegistryNumber(issued),
		UserName:       user.Name,
		CourseName:     course.Title,
		IssuedDate:     issued,
		ValidUntil:     issued.AddDate(0, 0, CertificateValidityDays),
		IsValid:        true,
	}
	require.NoError(t, db.Create(&existing).Error)

	cert, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.CertificateID, cert.CertificateID)
	assert.Equal(t, existing.RegistryNumber, cert.RegistryNumber)
}

func TestIssueCertificateBlockedByRevokedRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "nina")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	issued := time.Now()
	revoked := courseModels.Certificate{
		UserID:         user.ID,
		CourseID:       course.ID,
		CertificateID:  NewCertificateID(user.ID, course.ID),
		RegistryNumber: NewRegistryNumber(issued),
		UserName:       user.Name,
		CourseName:     course.Title,
		IssuedDate:     issued,
		ValidUntil:     issued.AddDate(0, 0, CertificateValidityDays),
		IsValid:        false,
	}
	require.NoError(t, db.Create(&revoked).Error)

	// The (user, course) slot is held by an invalidated row: issuance must
	// not return it as a fresh certificate.
	_, err = IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	assert.ErrorIs(t, err, ErrCertificateRevoked)

	var count int64
	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var refetched courseModels.Certificate
	require.NoError(t, db.First(&refetched, revoked.ID).Error)
	assert.False(t, refetched.IsValid)
}

func TestCertificateInvalidFlagPersistsOnCreate(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "olga")
	course := seedCourse(t, db, "Go Basics", true)

	issued := time.Now()
	cert := courseModels.Certificate{
		UserID:         user.ID,
		CourseID:       course.ID,
		CertificateID:  NewCertificateID(user.ID, course.ID),
		RegistryNumber: NewRegistryNumber(issued),
		UserName:       user.Name,
		CourseName:     course.Title,
		IssuedDate:     issued,
		ValidUntil:     issued.AddDate(0, 0, CertificateValidityDays),
		IsValid:        false,
	}
	require.NoError(t, db.Create(&cert).Error)

	var refetched courseModels.Certificate
	require.NoError(t, db.First(&refetched, cert.ID).Error)
	assert.False(t, refetched.IsValid)

	_, err := FindValidCertificate(db, cert.CertificateID)
	assert.ErrorIs(t, err, ErrCertificateMissing)
}

func TestIssueCertificateRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "dave")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestIssueCertificateWithDeletedCourse(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "erin")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(course).Update("is_deleted", true).Error)

	_, err = IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCertificateEarnedSurvivesModuleCompletion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "frank")
	course := seedCourse(t, db, "Go Basics", true)
	module := seedModule(t, db, course.ID, "One", 0, true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)

	_, err = IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)

	_, err = CompleteModule(db, user.ID, course.ID, module.ID)
	require.NoError(t, err)

	progress, err := GetProgress(db, user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, progress.CertificateEarned)
}

func TestNewCertificateIDTruncatesLongIDs(t *testing.T) {
	id := NewCertificateID(123456, 7)
	assert.Regexp(t, certificateIDPattern, id)
	assert.Contains(t, id, "OOG-3456-0007-")
}

func TestFindValidCertificateByEitherReference(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "grace")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	issued, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)

	byID, err := FindValidCertificate(db, issued.CertificateID)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, byID.ID)

	byRegistry, err := FindValidCertificate(db, issued.RegistryNumber)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, byRegistry.ID)
}

func TestFindValidCertificateUnknownReference(t *testing.T) {
	db := newTestDB(t)

	_, err := FindValidCertificate(db, "OOG-0000-0000-DEADBEEF")
	assert.ErrorIs(t, err, ErrCertificateMissing)

	_, err = FindValidCertificate(db, "  ")
	assert.ErrorIs(t, err, ErrCertificateMissing)
}

func TestFindValidCertificateExpired(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "heidi")
	course := seedCourse(t, db, "Go Basics", true)

	issued := time.Now().AddDate(-2, 0, 0)
	cert := courseModels.Certificate{
		UserID:         user.ID,
		CourseID:       course.ID,
		CertificateID:  NewCertificateID(user.ID, course.ID),
		RegistryNumber: NewRegistryNumber(issued),
		UserName:       user.Name,
		CourseName:     course.Title,
		IssuedDate:     issued,
		ValidUntil:     issued.AddDate(0, 0, CertificateValidityDays),
		IsValid:        true,
	}
	require.NoError(t, db.Create(&cert).Error)

	found, err := FindValidCertificate(db, cert.CertificateID)
	assert.ErrorIs(t, err, ErrCertificateExpired)
	require.NotNil(t, found)
	assert.Equal(t, cert.ValidUntil.Unix(), found.ValidUntil.Unix())
}

func TestFindValidCertificateInvalidatedRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ivan")
	course := seedCourse(t, db, "Go Basics", true)

	_, err := Enroll(db, user.ID, course.ID)
	require.NoError(t, err)
	issued, err := IssueCertificate(db, zeroDelayPolicy(), user.ID, course.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&courseModels.Certificate{}).
		Where("id = ?", issued.ID).Update("is_valid", false).Error)

	_, err = FindValidCertificate(db, issued.CertificateID)
	assert.ErrorIs(t, err, ErrCertificateMissing)
}
