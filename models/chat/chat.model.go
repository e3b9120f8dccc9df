package chat

import (
	"time"

	"gorm.io/gorm"
)

type ChatRoom struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	CourseID uint   `gorm:"index;not null" json:"course_id"`
}

// ChatMessage is append-only; no edits or deletes are modeled.
type ChatMessage struct {
	gorm.Model
	RoomID    uint      `gorm:"index;not null" json:"room_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}
