package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string    `gorm:"unique;not null;index" json:"email"`
	Password     string    `gorm:"not null" json:"-"`
	FirstName    string    `gorm:"size:50;default:''" json:"first_name"`
	LastName     string    `gorm:"size:50;default:''" json:"last_name"`
	PhoneNumber  string    `gorm:"size:15;default:''" json:"phone_number"`
	ProfileImage string    `gorm:"default:''" json:"profile_image"`
	FcmToken     string    `gorm:"size:100;default:''" json:"fcm_token"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	IsStaff      bool      `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool      `gorm:"default:false" json:"is_superuser"`
	IsVerified   bool      `gorm:"default:false" json:"is_verified"`
	LastLogin    time.Time `gorm:"default:NULL" json:"last_login"`
}
