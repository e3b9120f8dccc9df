package course

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null" json:"user_id"`
	ModuleID uint   `gorm:"index;not null" json:"module_id"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Review   string `gorm:"type:text" json:"review"`
}
