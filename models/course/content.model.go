package course

import "gorm.io/gorm"

// Video is a playable lesson inside a module
type Video struct {
	gorm.Model
	ModuleID    uint   `gorm:"index;not null" json:"module_id"`
	Title       string `gorm:"size:250;not null" json:"title"`
	VideoURL    string `gorm:"type:text;not null" json:"video_url"`
	Thumbnail   string `json:"thumbnail"`
	Duration    int64  `gorm:"default:0" json:"duration"` // seconds
	IsOngoing   bool   `gorm:"default:false" json:"is_ongoing"`
	IsCompleted bool   `gorm:"default:false" json:"is_completed"`
}

// Attachment is a downloadable document inside a module
type Attachment struct {
	gorm.Model
	ModuleID uint   `gorm:"index;not null" json:"module_id"`
	Title    string `gorm:"size:250;not null" json:"title"`
	Document string `json:"document"`
}
