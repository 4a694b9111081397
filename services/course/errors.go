package courseService

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrModuleNotFound     = errors.New("module not found in course")
	ErrNotEnrolled        = errors.New("user not enrolled in course")
	ErrQuizUnanswerable   = errors.New("quiz question has no stored correct answer")
	ErrCertificateExpired = errors.New("certificate has expired")
	ErrCertificateMissing = errors.New("certificate not found")
	ErrCertificateRevoked = errors.New("an invalidated certificate blocks re-issuance")
)
