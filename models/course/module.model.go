package course

import "gorm.io/gorm"

// CourseModule represents a unit of text content within a course.
// Content is markdown, rendered by the client.
type CourseModule struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Content     string `json:"content" gorm:"type:text"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in course
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
