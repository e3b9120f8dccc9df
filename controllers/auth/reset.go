package authController

import (
	"log"
	"time"
	"titanium/config"
	"titanium/database"
	"titanium/middleware"
	"titanium/models"
	"titanium/utils"
	authValidator "titanium/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const passwordResetOTP = "Password Reset OTP"

// PasswordReset issues a reset code to the account email. Reset codes share
// the OTP table with email verification but carry their own description so
// a verification code can never reset a password.
func PasswordReset(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPasswordReset").(*authValidator.PasswordResetRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		log.Printf("Password reset requested for unknown email %s", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found.", nil)
	}

	otp := utils.GenerateOTP()
	otpRecord := models.OTP{
		UserID:      user.ID,
		Email:       reqData.Email,
		Code:        otp,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
		Description: passwordResetOTP,
	}

	if err := database.Database.Db.Create(&otpRecord).Error; err != nil {
		log.Printf("Failed to store password reset OTP for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create OTP!", nil)
	}

	utils.SendPasswordResetEmail(reqData.Email, otp)

	log.Printf("Password reset OTP sent to %s", reqData.Email)
	return middleware.JsonResponse(c, fiber.StatusOK, "Password reset OTP sent to your email.", nil)
}

// PasswordResetConfirm consumes a reset code and stores the new password hash
func PasswordResetConfirm(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPasswordResetConfirm").(*authValidator.PasswordResetConfirmRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var otpRecord models.OTP
	if err := database.Database.Db.
		Where("email = ? AND code = ? AND description = ? AND is_used = ?",
			reqData.Email, reqData.OTP, passwordResetOTP, false).
		Order("created_at desc").
		First(&otpRecord).Error; err != nil {
		log.Printf("Password reset failed for %s: wrong code", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Incorrect OTP.", nil)
	}

	if otpRecord.ExpiresAt.Before(time.Now()) {
		log.Printf("Password reset failed for %s: expired code", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "OTP has expired.", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password!", nil)
	}

	otpRecord.IsUsed = true
	if err := database.Database.Db.Save(&otpRecord).Error; err != nil {
		log.Printf("Failed to update OTP status for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update OTP status!", nil)
	}

	if err := database.Database.Db.Model(&models.User{}).
		Where("email = ?", reqData.Email).
		Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating password for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update password!", nil)
	}

	log.Printf("Password reset successful for %s", reqData.Email)
	return middleware.JsonResponse(c, fiber.StatusOK, "Password reset successful.", nil)
}
