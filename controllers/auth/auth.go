package authController

import (
	"errors"
	"log"
	"time"
	"titanium/config"
	courseController "titanium/controllers/course"
	"titanium/database"
	"titanium/middleware"
	"titanium/models"
	"titanium/models/chat"
	"titanium/models/course"
	"titanium/models/subscription"
	"titanium/utils"
	authValidator "titanium/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		log.Printf("Registration error for %s: email already registered", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Email:       reqData.Email,
		Password:    string(hashedPassword),
		FirstName:   reqData.FirstName,
		LastName:    reqData.LastName,
		PhoneNumber: reqData.PhoneNumber,
		FcmToken:    reqData.FcmToken,
	}

	if err := db.Create(&newUser).Error; err != nil {
		// two concurrent registrations can both pass the lookup above; the
		// unique index on email decides the loser
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Registration error for %s: email already registered", reqData.Email)
			return middleware.ErrorResponse(c, fiber.StatusConflict, "Email is already registered!", nil)
		}
		log.Printf("Error saving user %s: %v", reqData.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user!", nil)
	}

	tokens, err := middleware.GenerateTokenPair(newUser.ID, newUser.Email)
	if err != nil {
		log.Printf("Error generating tokens for %s: %v", newUser.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.FirstName)

	log.Printf("User registered: %s", newUser.Email)
	return middleware.JsonResponse(c, fiber.StatusCreated, "Success", fiber.Map{
		"user":    newUser,
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("email = ? AND is_active = ?", reqData.Email, true).
		First(&user).Error; err != nil {
		log.Printf("Login failed for %s: user not found", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		log.Printf("Login failed for %s: wrong password", reqData.Email)
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials!", nil)
	}

	user.LastLogin = time.Now()
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error saving last login time for %s: %v", user.Email, err)
	}

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Printf("Error generating tokens for %s: %v", user.Email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token!", nil)
	}

	log.Printf("Login successful: %s", user.Email)
	return middleware.JsonResponse(c, fiber.StatusOK, "Success", fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func RefreshToken(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRefresh").(*authValidator.RefreshRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	claims, err := middleware.ValidateRefreshToken(reqData.Refresh)
	if err != nil {
		log.Printf("Token refresh failed: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token is invalid.", nil)
	}

	userID := claims["userId"].(float64)
	email, _ := claims["email"].(string)

	tokens, err := middleware.GenerateTokenPair(uint(userID), email)
	if err != nil {
		log.Printf("Error generating tokens for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to generate token!", nil)
	}

	log.Printf("Token refresh successful for %s", email)
	return middleware.JsonResponse(c, fiber.StatusOK, "Token is refresh.", fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func VerifyToken(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerify").(*authValidator.VerifyTokenRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	if _, err := middleware.ParseToken(reqData.Token, middleware.TokenTypeAccess); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token is invalid or expired.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Token is valid.", nil)
}

func Logout(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedRefresh").(*authValidator.RefreshRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	if err := middleware.BlacklistRefreshToken(reqData.Refresh); err != nil {
		log.Printf("Logout failed for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	log.Printf("Token blacklisted successfully for %s", email)
	return middleware.JsonResponse(c, fiber.StatusResetContent, "Logout successful.", nil)
}

func GetProfile(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	var user models.User
	if err := database.Database.Db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Printf("User profile not found for %s", email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User profile not found.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Success.", user)
}

func UpdateProfile(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedProfile").(*authValidator.UpdateProfileRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Printf("User profile not found for %s", email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User profile not found.", nil)
	}

	if reqData.FirstName != nil {
		user.FirstName = *reqData.FirstName
	}
	if reqData.LastName != nil {
		user.LastName = *reqData.LastName
	}
	if reqData.PhoneNumber != nil {
		user.PhoneNumber = *reqData.PhoneNumber
	}
	if reqData.ProfileImage != nil {
		user.ProfileImage = *reqData.ProfileImage
	}
	if reqData.FcmToken != nil {
		user.FcmToken = *reqData.FcmToken
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("User profile update failed for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile!", nil)
	}

	log.Printf("User profile updated successfully for %s", email)
	return middleware.JsonResponse(c, fiber.StatusOK, "User updated successfully", user)
}

func ChangePassword(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedChangePassword").(*authValidator.ChangePasswordRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Printf("User not found for %s", email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User profile not found.", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		log.Printf("Invalid old password provided by %s", email)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid Credential", fiber.Map{
			"old_password": []string{"Wrong password."},
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash password!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating password for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update password!", nil)
	}

	log.Printf("Password updated successfully for %s", email)
	return middleware.JsonResponse(c, fiber.StatusOK, "Password updated successfully", nil)
}

func DeleteAccount(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	var user models.User
	if err := database.Database.Db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Printf("User not found for %s", email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return cascadeDeleteUser(tx, &user)
	})
	if err != nil {
		log.Printf("Error deleting user %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error(), nil)
	}

	log.Printf("User deleted successfully: %s", email)
	return middleware.JsonResponse(c, fiber.StatusOK, "User deleted", nil)
}

// cascadeDeleteUser hard-deletes the user row and everything hanging off it:
// owned courses (with their module trees), answers, reviews, chat messages,
// billing rows, OTPs and blacklisted tokens.
func cascadeDeleteUser(tx *gorm.DB, user *models.User) error {
	var courseIDs []uint
	if err := tx.Model(&course.Course{}).Where("user_id = ?", user.ID).Pluck("id", &courseIDs).Error; err != nil {
		return err
	}
	for _, id := range courseIDs {
		if err := courseController.CascadeDeleteCourse(tx, id); err != nil {
			return err
		}
	}

	var membershipIDs []uint
	if err := tx.Model(&subscription.UserMembership{}).Where("user_id = ?", user.ID).Pluck("id", &membershipIDs).Error; err != nil {
		return err
	}
	if len(membershipIDs) > 0 {
		if err := tx.Unscoped().Where("user_membership_id IN ?", membershipIDs).Delete(&subscription.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", membershipIDs).Delete(&subscription.UserMembership{}).Error; err != nil {
			return err
		}
	}

	for _, model := range []interface{}{
		&course.AssignmentAnswer{},
		&course.Review{},
		&chat.ChatMessage{},
		&subscription.Card{},
		&subscription.PayHistory{},
	} {
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
			return err
		}
	}
	if err := tx.Unscoped().Where("email = ?", user.Email).Delete(&models.OTP{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.BlacklistedToken{}).Error; err != nil {
		return err
	}

	return tx.Unscoped().Delete(user).Error
}
