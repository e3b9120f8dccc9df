package subscriptionController

import (
	"log"
	"time"

	"titanium/database"
	"titanium/middleware"
	"titanium/models"
	"titanium/models/subscription"
	"titanium/utils"
	subscriptionValidator "titanium/validators/subscription"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListMemberships(c *fiber.Ctx) error {
	var memberships []subscription.Membership
	if err := database.Database.Db.Find(&memberships).Error; err != nil {
		log.Printf("Error listing memberships: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch memberships!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Memberships retrieved successfully", memberships)
}

// CreateMembership is restricted to staff accounts.
func CreateMembership(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.First(&user, userId).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found!", nil)
	}
	if !user.IsStaff {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "Only staff can create memberships.", nil)
	}

	reqData, ok := c.Locals("validatedMembership").(*subscriptionValidator.CreateMembershipRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	membership := subscription.Membership{
		Slug:           reqData.Slug,
		MembershipType: reqData.MembershipType,
		Duration:       reqData.Duration,
		DurationPeriod: reqData.DurationPeriod,
		Price:          reqData.Price,
	}

	if err := database.Database.Db.Create(&membership).Error; err != nil {
		log.Printf("Error creating membership: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create membership!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Membership created successfully", membership)
}

// Subscribe enrolls the caller on a plan. A user can hold one membership at
// a time; a second subscribe attempt conflicts instead of replacing it.
func Subscribe(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedSubscribe").(*subscriptionValidator.SubscribeRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var membership subscription.Membership
	if err := database.Database.Db.First(&membership, reqData.MembershipID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Membership not found.", nil)
	}

	var existing subscription.UserMembership
	if err := database.Database.Db.Where("user_id = ?", userId).First(&existing).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "User already has an active membership.", nil)
	}

	userMembership := subscription.UserMembership{
		UserID:        userId,
		MembershipID:  membership.ID,
		ReferenceCode: utils.ReferenceCode(),
	}
	sub := subscription.Subscription{
		ExpiresIn: time.Now().AddDate(0, 0, int(membership.Duration)),
		Status:    subscription.StatusActive,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&userMembership).Error; err != nil {
			return err
		}
		sub.UserMembershipID = userMembership.ID
		return tx.Create(&sub).Error
	})
	if err != nil {
		log.Printf("Error subscribing %s to membership %d: %v", email, membership.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create subscription!", nil)
	}

	utils.SendSubscriptionCreatedEmail(email)

	return middleware.JsonResponse(c, fiber.StatusCreated, "Subscription created successfully", fiber.Map{
		"user_membership": userMembership,
		"subscription":    sub,
	})
}

// GetSubscription returns the caller's membership and its current window.
func GetSubscription(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var userMembership subscription.UserMembership
	if err := database.Database.Db.
		Preload("Membership").
		Where("user_id = ?", userId).
		First(&userMembership).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No subscription found for this user.", nil)
	}

	var sub subscription.Subscription
	if err := database.Database.Db.
		Where("user_membership_id = ?", userMembership.ID).
		Order("created_at DESC").
		First(&sub).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No subscription found for this user.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Subscription details retrieved", fiber.Map{
		"user_membership": userMembership,
		"subscription":    sub,
	})
}
