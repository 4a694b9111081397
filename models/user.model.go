package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RolePending = "PENDING" // authenticated, membership application not yet approved
	RoleMember  = "MEMBER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Name          string     `json:"name" gorm:"default:''"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	AvatarURL     string     `json:"avatar_url" gorm:"default:''"`
	Role          string     `json:"role" gorm:"default:'PENDING'"` // PENDING, MEMBER, ADMIN
	OAuthProvider string     `json:"oauth_provider" gorm:"column:oauth_provider;uniqueIndex:idx_oauth_identity"`
	OAuthSubject  string     `json:"oauth_subject" gorm:"column:oauth_subject;uniqueIndex:idx_oauth_identity"`
	Password      string     `json:"-"` // bcrypt hash, set only for the bootstrap admin
	LastLogin     *time.Time `json:"last_login"`
	IsDeleted     bool       `gorm:"default:false"`
}
