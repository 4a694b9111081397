package courseService

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"oakridge/models"
	courseModels "oakridge/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateValidityDays is how long an issued certificate stays valid.
const CertificateValidityDays = 365

// RetryPolicy bounds the certificate poll: wait InitialDelay before the
// first check, then Interval between the remaining attempts.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Interval     time.Duration
}

// DefaultRetryPolicy matches the production schedule: 5 attempts, 3s before
// the first check, 4s between retries (~19s worst case).
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, InitialDelay: 3 * time.Second, Interval: 4 * time.Second}
}

// IssueCertificate awards the certificate for a qualifying completion. Call
// only when every module is complete and the course quiz is passed.
//
// The progress row is flagged CertificateEarned first, unconditionally; that
// write may cause a storage-side trigger to create the certificate row, so
// the issuer polls for it per the policy. If nothing appears it falls back
// to inserting the row itself, re-validating the user and course references
// beforehand. Both paths produce the same canonical identifier format. The
// composite unique index on (user_id, course_id) makes issuance idempotent:
// a duplicate insert, whether from a racing trigger or a racing caller,
// resolves to the already-issued certificate. Only valid rows count as
// issued; when the slot is held by an invalidated certificate the call
// fails with ErrCertificateRevoked rather than resurrecting it.
func IssueCertificate(db *gorm.DB, policy RetryPolicy, userID, courseID uint) (*courseModels.Certificate, error) {
	progress, err := GetProgress(db, userID, courseID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"certificate_earned": true}
	if progress.CompletedAt == nil {
		now := time.Now()
		updates["completed_at"] = &now
	}
	if err := db.Model(&courseModels.UserProgress{}).
		Where("id = ?", progress.ID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	// Poll for a trigger-created certificate before synthesizing one.
	if cert, err := pollForCertificate(db, policy, userID, courseID); err != nil {
		return nil, err
	} else if cert != nil {
		return cert, nil
	}

	return createFallbackCertificate(db, userID, courseID)
}

func pollForCertificate(db *gorm.DB, policy RetryPolicy, userID, courseID uint) (*courseModels.Certificate, error) {
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		if attempt == 0 {
			time.Sleep(policy.InitialDelay)
		} else {
			time.Sleep(policy.Interval)
		}

		var cert courseModels.Certificate
		err := db.Where("user_id = ? AND course_id = ? AND is_valid = ?", userID, courseID, true).First(&cert).Error
		if err == nil {
			return &cert, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

func createFallbackCertificate(db *gorm.DB, userID, courseID uint) (*courseModels.Certificate, error) {
	// The referenced rows may have been deleted while we polled.
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	issued := time.Now()
	cert := courseModels.Certificate{
		UserID:         userID,
		CourseID:       courseID,
		CertificateID:  NewCertificateID(userID, courseID),
		RegistryNumber: NewRegistryNumber(issued),
		UserName:       user.Name,
		CourseName:     course.Title,
		IssuedDate:     issued,
		ValidUntil:     issued.AddDate(0, 0, CertificateValidityDays),
		IsValid:        true,
	}

	if err := db.Create(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A trigger or concurrent issuance got there first. Only a
			// still-valid row counts as issued; a revoked row occupying the
			// (user, course) slot is a conflict, not a success.
			var existing courseModels.Certificate
			ferr := db.Where("user_id = ? AND course_id = ? AND is_valid = ?", userID, courseID, true).First(&existing).Error
			if ferr == nil {
				return &existing, nil
			}
			if errors.Is(ferr, gorm.ErrRecordNotFound) {
				return nil, ErrCertificateRevoked
			}
			return nil, ferr
		}
		return nil, err
	}

	return &cert, nil
}

// NewCertificateID builds the canonical certificate identifier:
// OOG-{4 of userID}-{4 of courseID}-{8 char suffix}.
func NewCertificateID(userID, courseID uint) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("OOG-%04d-%04d-%s", userID%10000, courseID%10000, suffix)
}

// NewRegistryNumber builds the secondary identifier: REG-{base36 timestamp}.
func NewRegistryNumber(issued time.Time) string {
	return "REG-" + strings.ToUpper(strconv.FormatInt(issued.UnixMilli(), 36))
}

// FindValidCertificate looks a certificate up by its certificate ID or
// registry number for public verification. Only valid rows qualify, and a
// row past its ValidUntil date is reported expired even if the sweep has not
// flipped IsValid yet.
func FindValidCertificate(db *gorm.DB, ref string) (*courseModels.Certificate, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrCertificateMissing
	}

	var cert courseModels.Certificate
	err := db.Where("(certificate_id = ? OR registry_number = ?) AND is_valid = ?", ref, ref, true).
		First(&cert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificateMissing
		}
		return nil, err
	}

	if time.Now().After(cert.ValidUntil) {
		return &cert, ErrCertificateExpired
	}

	return &cert, nil
}
