package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"titanium/config"
	"titanium/database"
	"titanium/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTokenTest(t *testing.T) {
	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		AccessTokenMinutes: 15,
		RefreshTokenHours:  168,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BlacklistedToken{}))
	database.Database = database.DbInstance{Db: db}
}

func TestGenerateTokenPair(t *testing.T) {
	setupTokenTest(t)

	tokens, err := GenerateTokenPair(42, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Access)
	require.NotEmpty(t, tokens.Refresh)

	claims, err := ParseToken(tokens.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.NotEmpty(t, claims["jti"])

	// a refresh token must not pass as an access token
	_, err = ParseToken(tokens.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	setupTokenTest(t)

	expired, err := signToken(3, "old@example.com", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(expired, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, "ok", nil)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	setupTokenTest(t)

	_, err := ParseToken("not-a-token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklistRefreshToken(t *testing.T) {
	setupTokenTest(t)

	tokens, err := GenerateTokenPair(7, "sam@example.com")
	require.NoError(t, err)

	_, err = ValidateRefreshToken(tokens.Refresh)
	require.NoError(t, err)

	require.NoError(t, BlacklistRefreshToken(tokens.Refresh))

	_, err = ValidateRefreshToken(tokens.Refresh)
	assert.ErrorIs(t, err, ErrBlacklistedToken)

	// blacklisting twice fails because the token is already revoked
	assert.ErrorIs(t, BlacklistRefreshToken(tokens.Refresh), ErrBlacklistedToken)
}

func TestJWTMiddleware(t *testing.T) {
	setupTokenTest(t)

	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, "ok", fiber.Map{
			"user_id": c.Locals("userId"),
			"email":   c.Locals("userEmail"),
		})
	})

	tokens, err := GenerateTokenPair(9, "amy@example.com")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Token " + tokens.Access, fiber.StatusUnauthorized},
		{"no credential", "Bearer", fiber.StatusUnauthorized},
		{"spaces in credential", "Bearer abc def", fiber.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + tokens.Refresh, fiber.StatusUnauthorized},
		{"valid access token", "Bearer " + tokens.Access, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}
