package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Application statuses
const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

// ApplicationQuestion is an admin-managed question shown on the membership application form
type ApplicationQuestion struct {
	gorm.Model
	Prompt     string `json:"prompt" gorm:"type:text;not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	// Set explicitly on create; a default tag would swallow an explicit false.
	IsRequired bool `json:"is_required"`
	IsActive   bool `json:"is_active"`
	IsDeleted  bool   `gorm:"default:false"`
}

// MembershipApplication is a user's application to join the platform.
// Answers maps question ID to the submitted answer text.
type MembershipApplication struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Answers         datatypes.JSON `json:"answers"`
	Status          string         `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	SubmittedAt     time.Time      `json:"submitted_at"`
	ReviewedAt      *time.Time     `json:"reviewed_at"`
	ReviewedBy      *uint          `json:"reviewed_by"`
	RejectionReason string         `json:"rejection_reason"`
	IsDeleted       bool           `gorm:"default:false"`
}
