package authController

import (
	"log"
	"time"
	"titanium/database"
	"titanium/middleware"
	"titanium/models"
	"titanium/utils"
	authValidator "titanium/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SendEmailOTP issues a 6-digit code for email verification. Codes live in
// the database so any process instance can verify them.
func SendEmailOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedEmailOTP").(*authValidator.EmailOTPRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		log.Printf("OTP requested for unknown email %s", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found.", nil)
	}

	otp := utils.GenerateOTP()
	otpRecord := models.OTP{
		UserID:      user.ID,
		Email:       reqData.Email,
		Code:        otp,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
		Description: "Email Verification OTP",
	}

	if err := database.Database.Db.Create(&otpRecord).Error; err != nil {
		log.Printf("Failed to store OTP for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create OTP!", nil)
	}

	utils.SendOTPEmail(reqData.Email, otp)

	log.Printf("OTP sent to %s", reqData.Email)
	return middleware.JsonResponse(c, fiber.StatusOK, "OTP sent to your email.", nil)
}

// VerifyEmailOTP consumes a previously issued code
func VerifyEmailOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyOTP").(*authValidator.VerifyEmailOTPRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var count int64
	database.Database.Db.Model(&models.OTP{}).
		Where("email = ? AND is_used = ?", reqData.Email, false).
		Count(&count)
	if count == 0 {
		log.Printf("OTP verification failed for %s: none issued", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "OTP not sent for this email.", nil)
	}

	var otpRecord models.OTP
	if err := database.Database.Db.
		Where("email = ? AND code = ? AND is_used = ?", reqData.Email, reqData.OTP, false).
		Order("created_at desc").
		First(&otpRecord).Error; err != nil {
		log.Printf("OTP verification failed for %s: wrong code", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Incorrect OTP.", nil)
	}

	if otpRecord.ExpiresAt.Before(time.Now()) {
		log.Printf("OTP verification failed for %s: expired", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "OTP has expired.", nil)
	}

	otpRecord.IsUsed = true
	if err := database.Database.Db.Save(&otpRecord).Error; err != nil {
		log.Printf("Failed to update OTP status for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update OTP status!", nil)
	}

	if err := database.Database.Db.Model(&models.User{}).
		Where("email = ?", reqData.Email).
		Update("is_verified", true).Error; err != nil {
		log.Printf("Failed to mark %s verified: %v", reqData.Email, err)
	}

	log.Printf("Email verification successful for %s", reqData.Email)
	return middleware.JsonResponse(c, fiber.StatusOK, "Email verification successful.", nil)
}
