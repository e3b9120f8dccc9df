package utils

import (
	"log"
	"time"
	"titanium/database"
	"titanium/models"
	"titanium/models/subscription"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the daily subscription expiry sweep
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily just after midnight
	c.AddFunc("5 0 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ExpireSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 00:05")
}

// ExpireSubscriptions marks lapsed subscriptions as EXPIRED and notifies each
// subscriber once. Rows are retained so subscription history is auditable.
func ExpireSubscriptions() {
	db := database.Database.Db
	today := time.Now().Truncate(24 * time.Hour)

	var expired []subscription.Subscription
	if err := db.
		Where("status = ? AND expires_in < ?", subscription.StatusActive, today).
		Preload("UserMembership").
		Find(&expired).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expired subscriptions: %v", err)
		return
	}

	for _, sub := range expired {
		if err := db.Model(&subscription.Subscription{}).
			Where("id = ?", sub.ID).
			Update("status", subscription.StatusExpired).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscription %d: %v", sub.ID, err)
			continue
		}

		if sub.ExpiryNotified {
			continue
		}

		var user models.User
		if err := db.First(&user, sub.UserMembership.UserID).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching user for subscription %d: %v", sub.ID, err)
			continue
		}

		SendSubscriptionExpiredEmail(user.Email)
		db.Model(&subscription.Subscription{}).Where("id = ?", sub.ID).Update("expiry_notified", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Subscription %d expired, notified %s", sub.ID, user.Email)
	}
}
