package subscription

import (
	"time"

	"gorm.io/gorm"
)

// Subscription status enum values
const (
	StatusActive  = "ACTIVE"
	StatusExpired = "EXPIRED"
)

// Subscription is the active window created alongside a UserMembership.
// Expired rows are retained and flagged EXPIRED so subscription history
// survives the transition.
type Subscription struct {
	gorm.Model
	UserMembershipID uint      `gorm:"index;not null" json:"user_membership_id"`
	ExpiresIn        time.Time `gorm:"not null" json:"expires_in"`
	Status           string    `gorm:"size:20;default:'ACTIVE'" json:"status"`
	ExpiryNotified   bool      `gorm:"default:false" json:"expiry_notified"`

	UserMembership UserMembership `gorm:"foreignKey:UserMembershipID" json:"user_membership,omitempty"`
}

// IsExpired reports whether the subscription window has passed.
func (s *Subscription) IsExpired(today time.Time) bool {
	return s.ExpiresIn.Before(today.Truncate(24 * time.Hour))
}
