package subscriptionController

import (
	"errors"
	"log"

	"titanium/database"
	"titanium/middleware"
	"titanium/models/subscription"
	"titanium/utils"
	subscriptionValidator "titanium/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

func gatewayError(c *fiber.Ctx, err error) error {
	if errors.Is(err, utils.ErrGatewayUnreachable) {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "An error occurred while connecting to Paystack.", nil)
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Payment request failed!", nil)
}

func stringField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}

// InitializeTransaction opens a gateway-hosted checkout and proxies the
// gateway's reply, status code included, straight back to the caller.
func InitializeTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedTransaction").(*subscriptionValidator.TransactionRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	resp, err := utils.InitializeTransaction(reqData.Email, reqData.Amount)
	if err != nil {
		log.Printf("Paystack initialize failed for %s: %v", reqData.Email, err)
		return gatewayError(c, err)
	}

	if resp.Ok() {
		data, _ := resp.Body["data"].(map[string]interface{})
		history := subscription.PayHistory{
			UserID:             userId,
			PaystackAccessCode: stringField(data, "access_code"),
			Amount:             float64(reqData.Amount),
		}
		if err := database.Database.Db.Create(&history).Error; err != nil {
			log.Printf("Error recording pay history for user %d: %v", userId, err)
		}
	}

	return c.Status(resp.StatusCode).JSON(resp.Body)
}

// VerifyTransaction checks a reference with the gateway. On success the
// reusable card authorization, if any, is stored for later charges.
func VerifyTransaction(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reference := c.Params("reference")
	if reference == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Transaction reference is required!", nil)
	}

	resp, err := utils.VerifyTransaction(reference)
	if err != nil {
		log.Printf("Paystack verify failed for %s: %v", reference, err)
		return gatewayError(c, err)
	}

	if resp.Ok() {
		if auth := resp.AuthorizationData(); auth != nil {
			saveCardAuthorization(userId, auth)
		}
	}

	return c.Status(resp.StatusCode).JSON(resp.Body)
}

// ChargeAuthorization charges the caller's stored card. Without a stored
// card there is nothing to charge against.
func ChargeAuthorization(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedTransaction").(*subscriptionValidator.TransactionRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var card subscription.Card
	if err := database.Database.Db.
		Where("user_id = ?", userId).
		Order("created_at DESC").
		First(&card).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No saved card found for this user.", nil)
	}

	resp, err := utils.ChargeAuthorization(reqData.Email, reqData.Amount, card.AuthorizationCode)
	if err != nil {
		log.Printf("Paystack charge failed for user %d: %v", userId, err)
		return gatewayError(c, err)
	}

	if resp.Ok() {
		data, _ := resp.Body["data"].(map[string]interface{})
		history := subscription.PayHistory{
			UserID:           userId,
			PaystackChargeID: stringField(data, "reference"),
			Amount:           float64(reqData.Amount),
			Paid:             true,
		}
		if err := database.Database.Db.Create(&history).Error; err != nil {
			log.Printf("Error recording pay history for user %d: %v", userId, err)
		}
	}

	return c.Status(resp.StatusCode).JSON(resp.Body)
}

// saveCardAuthorization upserts the user's card keyed by the gateway
// signature so re-verifying the same card does not duplicate rows.
func saveCardAuthorization(userId uint, auth map[string]interface{}) {
	reusable, _ := auth["reusable"].(bool)
	card := subscription.Card{
		UserID:            userId,
		AuthorizationCode: stringField(auth, "authorization_code"),
		CardType:          stringField(auth, "card_type"),
		Last4:             stringField(auth, "last4"),
		ExpMonth:          stringField(auth, "exp_month"),
		ExpYear:           stringField(auth, "exp_year"),
		Bin:               stringField(auth, "bin"),
		Bank:              stringField(auth, "bank"),
		Channel:           stringField(auth, "channel"),
		Signature:         stringField(auth, "signature"),
		Reusable:          reusable,
		CountryCode:       stringField(auth, "country_code"),
		AccountName:       stringField(auth, "account_name"),
	}
	if card.AuthorizationCode == "" {
		return
	}

	var existing subscription.Card
	err := database.Database.Db.
		Where("user_id = ? AND signature = ?", userId, card.Signature).
		First(&existing).Error
	if err == nil {
		card.ID = existing.ID
		card.CreatedAt = existing.CreatedAt
	}
	if err := database.Database.Db.Save(&card).Error; err != nil {
		log.Printf("Error saving card for user %d: %v", userId, err)
	}
}
