package subscriptionValidator

import (
	"strings"
	"titanium/middleware"
	"titanium/models/subscription"

	"github.com/gofiber/fiber/v2"
)

type CreateMembershipRequest struct {
	MembershipType string  `json:"membership_type"`
	Slug           string  `json:"slug"`
	Duration       uint    `json:"duration"`
	DurationPeriod string  `json:"duration_period"`
	Price          float64 `json:"price"`
}

// CreateMembership validator middleware
func CreateMembership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateMembershipRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		switch reqData.MembershipType {
		case subscription.MembershipPremium, subscription.MembershipStandard, subscription.MembershipBasic:
		default:
			errors["membership_type"] = "Must be one of Premium, Standard, Basic!"
		}
		if reqData.Duration == 0 {
			errors["duration"] = "Duration (days) is required!"
		}
		if reqData.DurationPeriod == "" {
			reqData.DurationPeriod = subscription.PeriodMonths
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMembership", reqData)
		return c.Next()
	}
}

type SubscribeRequest struct {
	MembershipID uint `json:"membership_id"`
}

// Subscribe validator middleware
func Subscribe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubscribeRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if reqData.MembershipID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"membership_id": "Membership id is required!",
			})
		}

		c.Locals("validatedSubscribe", reqData)
		return c.Next()
	}
}

type TransactionRequest struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

// Transaction validates the initialize and charge bodies: both need
// email + amount
func Transaction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TransactionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

		errors := make(map[string]string)
		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount is required!"
		}
		if len(errors) > 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Email and amount are required.", errors)
		}

		c.Locals("validatedTransaction", reqData)
		return c.Next()
	}
}
