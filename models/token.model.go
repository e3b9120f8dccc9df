package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken records revoked refresh tokens by their jti claim.
// A row is only consulted until the underlying token would have expired anyway.
type BlacklistedToken struct {
	gorm.Model
	JTI       string    `gorm:"size:64;uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}
