package subscription

import "gorm.io/gorm"

// Card stores a reusable Paystack authorization captured after a verified
// transaction. The authorization code alone is enough to charge again.
type Card struct {
	gorm.Model
	UserID            uint   `gorm:"index;not null" json:"user_id"`
	AuthorizationCode string `gorm:"size:255;not null" json:"authorization_code"`
	CardType          string `gorm:"size:50" json:"card_type"`
	Last4             string `gorm:"size:4" json:"last4"`
	ExpMonth          string `gorm:"size:2" json:"exp_month"`
	ExpYear           string `gorm:"size:4" json:"exp_year"`
	Bin               string `gorm:"size:6" json:"bin"`
	Bank              string `gorm:"size:100" json:"bank"`
	Channel           string `gorm:"size:50" json:"channel"`
	Signature         string `gorm:"size:255" json:"signature"`
	Reusable          bool   `gorm:"default:false" json:"reusable"`
	CountryCode       string `gorm:"size:2" json:"country_code"`
	AccountName       string `gorm:"size:255" json:"account_name"`
}

// PayHistory records every charge pushed through the gateway
type PayHistory struct {
	gorm.Model
	UserID             uint    `gorm:"index;not null" json:"user_id"`
	MembershipID       uint    `gorm:"index" json:"membership_id"`
	PaystackChargeID   string  `gorm:"size:100;default:''" json:"paystack_charge_id"`
	PaystackAccessCode string  `gorm:"size:100;default:''" json:"paystack_access_code"`
	Amount             float64 `gorm:"default:0" json:"amount"`
	Paid               bool    `gorm:"default:false" json:"paid"`
}
