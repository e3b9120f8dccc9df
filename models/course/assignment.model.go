package course

import "gorm.io/gorm"

// Assignment content type enum values
const (
	ContentTypeText      = "TEXT"
	ContentTypeImage     = "IMAGE"
	ContentTypeTextImage = "TEXT_IMAGE"
)

type Assignment struct {
	gorm.Model
	ModuleID    uint   `gorm:"index;not null" json:"module_id"`
	Title       string `gorm:"size:250;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	ContentType string `gorm:"size:20;default:'TEXT_IMAGE'" json:"content_type"` // TEXT, IMAGE, TEXT_IMAGE
	FileRef     string `json:"file_ref"`
}

// AssignmentAnswer holds a learner's submission. One answer per
// (user, assignment) pair; the pair is checked before insert, not by schema.
type AssignmentAnswer struct {
	gorm.Model
	AssignmentID uint   `gorm:"index;not null" json:"assignment_id"`
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	TextAnswer   string `gorm:"type:text" json:"text_answer"`
	FileAnswer   string `json:"file_answer"`
	Grade        string `gorm:"size:15" json:"grade"`
}
