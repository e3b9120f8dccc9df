package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"titanium/config"
	"titanium/database"
	"titanium/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrBlacklistedToken = errors.New("token has been blacklisted")
)

// TokenPair holds a freshly issued access/refresh pair
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// GenerateTokenPair issues a short-lived access token and a longer-lived
// refresh token bound to the user identity
func GenerateTokenPair(userID uint, email string) (*TokenPair, error) {
	access, err := signToken(userID, email, TokenTypeAccess,
		time.Duration(config.AppConfig.AccessTokenMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}

	refresh, err := signToken(userID, email, TokenTypeRefresh,
		time.Duration(config.AppConfig.RefreshTokenHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func signToken(userID uint, email, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"type":   tokenType,
		"jti":    uuid.NewString(),
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// ParseToken validates signature and expiry and checks the expected token type
func ParseToken(tokenString, expectedType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return nil, ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != expectedType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateRefreshToken parses a refresh token and rejects blacklisted ones
func ValidateRefreshToken(tokenString string) (jwt.MapClaims, error) {
	claims, err := ParseToken(tokenString, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidToken
	}

	var blacklisted models.BlacklistedToken
	if err := database.Database.Db.Where("jti = ?", jti).First(&blacklisted).Error; err == nil {
		return nil, ErrBlacklistedToken
	}

	return claims, nil
}

// BlacklistRefreshToken revokes a refresh token by storing its jti until the
// token would have expired on its own
func BlacklistRefreshToken(tokenString string) error {
	claims, err := ValidateRefreshToken(tokenString)
	if err != nil {
		return err
	}

	jti, _ := claims["jti"].(string)
	userID, _ := claims["userId"].(float64)
	exp, _ := claims["exp"].(float64)

	entry := models.BlacklistedToken{
		JTI:       jti,
		UserID:    uint(userID),
		ExpiresAt: time.Unix(int64(exp), 0),
	}
	return database.Database.Db.Create(&entry).Error
}

// bearerToken extracts the credential from an Authorization header. It fails
// on a missing header, a non-bearer scheme, no credential segment, or a
// credential containing spaces.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "Missing Authorization header"
	}

	parts := strings.Fields(authHeader)
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", "Invalid Authorization header format"
	}
	if len(parts) == 1 {
		return "", "Invalid token header. No credentials provided."
	}
	if len(parts) > 2 {
		return "", "Invalid token header. Token string should not contain spaces."
	}

	return parts[1], ""
}

// JWTMiddleware checks for a valid access token in the request
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString, errMsg := bearerToken(c)
	if errMsg != "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, errMsg, nil)
	}

	claims, err := ParseToken(tokenString, TokenTypeAccess)
	if err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token", nil)
	}

	// JWT numeric claims decode as float64
	userID := claims["userId"].(float64)
	c.Locals("userId", uint(userID))
	if email, ok := claims["email"].(string); ok {
		c.Locals("userEmail", email)
	}

	return c.Next()
}
