package course

import "gorm.io/gorm"

// Level enum values
const (
	LevelBasic    = "BASIC"
	LevelStandard = "STANDARD"
	LevelAdvance  = "ADVANCE"
)

// Course represents a learning course owned by its creator
type Course struct {
	gorm.Model
	UserID          uint   `gorm:"index;not null" json:"user_id"`
	CourseTitle     string `gorm:"size:250;not null" json:"course_title"`
	Detail          string `gorm:"type:text;index" json:"detail"`
	BannerImage     string `json:"banner_image"`
	Modules         int    `gorm:"default:0" json:"modules"`
	Level           string `gorm:"size:30;default:'STANDARD'" json:"level"` // BASIC, STANDARD, ADVANCE
	ClassPerModules int    `gorm:"default:0" json:"class_per_modules"`
	IsDocument      bool   `gorm:"default:true" json:"is_document"`
	IsOngoing       bool   `gorm:"default:false" json:"is_ongoing"`
	IsCompleted     bool   `gorm:"default:false" json:"is_completed"`
}

// Module represents a section within a course
type Module struct {
	gorm.Model
	CourseID     uint   `gorm:"index;not null" json:"course_id"`
	Title        string `gorm:"size:250;not null" json:"title"`
	Detail       string `gorm:"type:text" json:"detail"`
	Thumbnail    string `json:"thumbnail"`
	IsAssessment bool   `gorm:"default:true" json:"is_assessment"`
	IsOngoing    bool   `gorm:"default:false" json:"is_ongoing"`
	IsCompleted  bool   `gorm:"default:false" json:"is_completed"`
}
