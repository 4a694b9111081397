package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued proof of course completion. The composite unique
// index on (user_id, course_id) guarantees at most one certificate per pair
// even under racing issuance attempts; rows are immutable after creation
// except for the expiry sweep flipping IsValid.
type Certificate struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CourseID       uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CertificateID  string    `json:"certificate_id" gorm:"uniqueIndex;not null"` // OOG-XXXX-XXXX-XXXXXXXX
	RegistryNumber string    `json:"registry_number" gorm:"uniqueIndex;not null"` // REG-<base36 timestamp>
	UserName       string    `json:"user_name"`   // denormalized for public lookup
	CourseName     string    `json:"course_name"` // denormalized for public lookup
	IssuedDate     time.Time `json:"issued_date"`
	ValidUntil     time.Time `json:"valid_until"` // IssuedDate + 365 days
	// No column default: gorm omits zero-value fields that carry a default
	// tag on insert, which would turn an explicit false into true. Every
	// create path sets IsValid itself.
	IsValid bool `json:"is_valid"`
}
