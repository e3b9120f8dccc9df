package subscription

import "gorm.io/gorm"

// Membership type enum values
const (
	MembershipPremium  = "Premium"
	MembershipStandard = "Standard"
	MembershipBasic    = "Basic"
)

// Duration period enum values
const (
	PeriodMonths = "Months"
	PeriodYears  = "Years"
)

// Membership is a purchasable plan
type Membership struct {
	gorm.Model
	Slug           string  `gorm:"size:100;index" json:"slug"`
	MembershipType string  `gorm:"size:30;default:'Basic'" json:"membership_type"` // Premium, Standard, Basic
	Duration       uint    `gorm:"default:30" json:"duration"`                     // in days
	DurationPeriod string  `gorm:"size:100;default:'Months'" json:"duration_period"`
	Price          float64 `gorm:"default:0" json:"price"`
}

// UserMembership links a user to their single active plan
type UserMembership struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	MembershipID  uint   `gorm:"index;not null" json:"membership_id"`
	ReferenceCode string `gorm:"size:100;default:''" json:"reference_code"`

	Membership Membership `gorm:"foreignKey:MembershipID" json:"membership,omitempty"`
}
