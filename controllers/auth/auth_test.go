package authController

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"titanium/config"
	"titanium/database"
	"titanium/middleware"
	"titanium/models"
	authValidator "titanium/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		SaltRound:          bcrypt.MinCost,
		AccessTokenMinutes: 15,
		RefreshTokenHours:  168,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/register", authValidator.Register(), Register)
	app.Post("/auth/login", authValidator.Login(), Login)
	app.Post("/auth/logout", authValidator.RefreshToken(), middleware.JWTMiddleware, Logout)
	app.Post("/auth/token/refresh", authValidator.RefreshToken(), RefreshToken)
	app.Post("/auth/token/verify", authValidator.VerifyToken(), VerifyToken)
	app.Get("/auth/user_profile", middleware.JWTMiddleware, GetProfile)
	app.Patch("/auth/user_profile", authValidator.UpdateProfile(), middleware.JWTMiddleware, UpdateProfile)
	app.Patch("/auth/changepassword", authValidator.ChangePassword(), middleware.JWTMiddleware, ChangePassword)
	app.Delete("/auth/delete_user", middleware.JWTMiddleware, DeleteAccount)
	app.Post("/auth/password_reset", authValidator.PasswordReset(), PasswordReset)
	app.Post("/auth/password_reset/confirm", authValidator.PasswordResetConfirm(), PasswordResetConfirm)
	app.Post("/auth/email/otp", authValidator.SendEmailOTP(), SendEmailOTP)
	app.Patch("/auth/email/otp/verify", authValidator.VerifyEmailOTP(), VerifyEmailOTP)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func createTestUser(t *testing.T, email, password string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Email: email, Password: string(hashed)}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func TestRegister(t *testing.T) {
	app := setupAuthTest(t)

	body := fiber.Map{
		"email":      "Jane@Example.com",
		"password":   "password123",
		"first_name": "Jane",
	}

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/register", body, "")
	require.Equal(t, fiber.StatusCreated, code)

	data := out["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access"])
	assert.NotEmpty(t, data["refresh"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", user["email"])

	// same email again conflicts
	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/register", body, "")
	assert.Equal(t, fiber.StatusConflict, code)
}

func TestRegisterValidation(t *testing.T) {
	app := setupAuthTest(t)

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/register", fiber.Map{
		"email":    "not-an-email",
		"password": "short",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Validation failed!", out["detail"])
}

func TestLogin(t *testing.T) {
	app := setupAuthTest(t)
	createTestUser(t, "sam@example.com", "password123")

	code, _ := doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "sam@example.com",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "sam@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access"])
	assert.NotEmpty(t, data["refresh"])
}

func TestLoginInactiveUser(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "gone@example.com", "password123")
	require.NoError(t, database.Database.Db.Model(&user).Update("is_active", false).Error)

	code, _ := doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "gone@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestRefreshAndLogout(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "amy@example.com", "password123")

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/token/refresh", fiber.Map{
		"refresh": tokens.Refresh,
	}, "")
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access"])

	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/logout", fiber.Map{
		"refresh": tokens.Refresh,
	}, tokens.Access)
	require.Equal(t, fiber.StatusResetContent, code)

	// the blacklisted refresh token is dead
	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/token/refresh", fiber.Map{
		"refresh": tokens.Refresh,
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestVerifyToken(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "vic@example.com", "password123")

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/token/verify", fiber.Map{
		"token": tokens.Access,
	}, "")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Token is valid.", out["message"])

	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/token/verify", fiber.Map{
		"token": "garbage",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestProfile(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "pat@example.com", "password123")

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	code, out := doJSON(t, app, fiber.MethodGet, "/auth/user_profile", nil, tokens.Access)
	require.Equal(t, fiber.StatusOK, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "pat@example.com", data["email"])

	code, out = doJSON(t, app, fiber.MethodPatch, "/auth/user_profile", fiber.Map{
		"first_name": "Pat",
		"last_name":  "Doe",
	}, tokens.Access)
	require.Equal(t, fiber.StatusOK, code)
	data = out["data"].(map[string]interface{})
	assert.Equal(t, "Pat", data["first_name"])
	assert.Equal(t, "Doe", data["last_name"])
}

func TestChangePassword(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "kim@example.com", "password123")

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	code, _ := doJSON(t, app, fiber.MethodPatch, "/auth/changepassword", fiber.Map{
		"old_password": "wrong-password",
		"new_password": "newpassword1",
	}, tokens.Access)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, fiber.MethodPatch, "/auth/changepassword", fiber.Map{
		"old_password": "password123",
		"new_password": "newpassword1",
	}, tokens.Access)
	require.Equal(t, fiber.StatusOK, code)

	// old password no longer works
	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "kim@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "kim@example.com",
		"password": "newpassword1",
	}, "")
	assert.Equal(t, fiber.StatusOK, code)
}

func TestDeleteAccount(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "del@example.com", "password123")

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	code, _ := doJSON(t, app, fiber.MethodDelete, "/auth/delete_user", nil, tokens.Access)
	require.Equal(t, fiber.StatusOK, code)

	var count int64
	database.Database.Db.Model(&models.User{}).Where("email = ?", "del@example.com").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestEmailOTPFlow(t *testing.T) {
	app := setupAuthTest(t)
	createTestUser(t, "otp@example.com", "password123")

	// no OTP sent yet
	code, _ := doJSON(t, app, fiber.MethodPatch, "/auth/email/otp/verify", fiber.Map{
		"email": "otp@example.com",
		"otp":   "123456",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/email/otp", fiber.Map{
		"email": "otp@example.com",
	}, "")
	require.Equal(t, fiber.StatusOK, code)

	var otp models.OTP
	require.NoError(t, database.Database.Db.
		Where("email = ?", "otp@example.com").
		Order("created_at DESC").
		First(&otp).Error)

	code, _ = doJSON(t, app, fiber.MethodPatch, "/auth/email/otp/verify", fiber.Map{
		"email": "otp@example.com",
		"otp":   "000000",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, out := doJSON(t, app, fiber.MethodPatch, "/auth/email/otp/verify", fiber.Map{
		"email": "otp@example.com",
		"otp":   otp.Code,
	}, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Email verification successful.", out["message"])

	var user models.User
	require.NoError(t, database.Database.Db.Where("email = ?", "otp@example.com").First(&user).Error)
	assert.True(t, user.IsVerified)
}

func TestEmailOTPExpired(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "late@example.com", "password123")

	otp := models.OTP{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      "654321",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, database.Database.Db.Create(&otp).Error)

	code, out := doJSON(t, app, fiber.MethodPatch, "/auth/email/otp/verify", fiber.Map{
		"email": "late@example.com",
		"otp":   "654321",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "OTP has expired.", out["detail"])
}

func TestPasswordResetFlow(t *testing.T) {
	app := setupAuthTest(t)
	createTestUser(t, "reset@example.com", "oldpass123")

	code, _ := doJSON(t, app, fiber.MethodPost, "/auth/password_reset", fiber.Map{
		"email": "nobody@example.com",
	}, "")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/password_reset", fiber.Map{
		"email": "reset@example.com",
	}, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Password reset OTP sent to your email.", out["message"])

	var otp models.OTP
	require.NoError(t, database.Database.Db.
		Where("email = ? AND description = ?", "reset@example.com", passwordResetOTP).
		Order("created_at DESC").
		First(&otp).Error)

	// wrong code
	code, out = doJSON(t, app, fiber.MethodPost, "/auth/password_reset/confirm", fiber.Map{
		"email":        "reset@example.com",
		"otp":          "000000",
		"new_password": "newpass456",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Incorrect OTP.", out["detail"])

	code, out = doJSON(t, app, fiber.MethodPost, "/auth/password_reset/confirm", fiber.Map{
		"email":        "reset@example.com",
		"otp":          otp.Code,
		"new_password": "newpass456",
	}, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Password reset successful.", out["message"])

	// old password is dead, new one logs in
	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "reset@example.com",
		"password": "oldpass123",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/login", fiber.Map{
		"email":    "reset@example.com",
		"password": "newpass456",
	}, "")
	assert.Equal(t, fiber.StatusOK, code)

	// code is single use
	code, _ = doJSON(t, app, fiber.MethodPost, "/auth/password_reset/confirm", fiber.Map{
		"email":        "reset@example.com",
		"otp":          otp.Code,
		"new_password": "another789",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestPasswordResetRejectsVerificationOTP(t *testing.T) {
	app := setupAuthTest(t)
	createTestUser(t, "mixed@example.com", "password123")

	code, _ := doJSON(t, app, fiber.MethodPost, "/auth/email/otp", fiber.Map{
		"email": "mixed@example.com",
	}, "")
	require.Equal(t, fiber.StatusOK, code)

	var otp models.OTP
	require.NoError(t, database.Database.Db.
		Where("email = ?", "mixed@example.com").
		Order("created_at DESC").
		First(&otp).Error)

	// an email-verification code must not open the reset path
	code, out := doJSON(t, app, fiber.MethodPost, "/auth/password_reset/confirm", fiber.Map{
		"email":        "mixed@example.com",
		"otp":          otp.Code,
		"new_password": "newpass456",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "Incorrect OTP.", out["detail"])
}

func TestPasswordResetExpiredOTP(t *testing.T) {
	app := setupAuthTest(t)
	user := createTestUser(t, "stale@example.com", "password123")

	otp := models.OTP{
		UserID:      user.ID,
		Email:       user.Email,
		Code:        "112233",
		ExpiresAt:   time.Now().Add(-time.Minute),
		Description: passwordResetOTP,
	}
	require.NoError(t, database.Database.Db.Create(&otp).Error)

	code, out := doJSON(t, app, fiber.MethodPost, "/auth/password_reset/confirm", fiber.Map{
		"email":        "stale@example.com",
		"otp":          "112233",
		"new_password": "newpass456",
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "OTP has expired.", out["detail"])
}

func TestDuplicateEmailTranslatedToConflict(t *testing.T) {
	setupAuthTest(t)

	first := models.User{Email: "twice@example.com", Password: "x"}
	require.NoError(t, database.Database.Db.Create(&first).Error)

	// the unique index on email surfaces as gorm.ErrDuplicatedKey, which
	// Register maps to 409 when two requests race past the lookup
	second := models.User{Email: "twice@example.com", Password: "x"}
	err := database.Database.Db.Create(&second).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}
