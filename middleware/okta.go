package middleware

import (
	"fmt"
	"titanium/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// OktaMiddleware validates an externally issued bearer token against the
// configured Okta signing secret. The proven identity is the external
// subject claim, not a local user row.
func OktaMiddleware(c *fiber.Ctx) error {
	tokenString, errMsg := bearerToken(c)
	if errMsg != "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, errMsg, nil)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.OktaClientSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Token has expired or failed to authenticate", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid claims", nil)
	}
	if !claims.VerifyAudience(config.AppConfig.OktaAudience, true) {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid claims", nil)
	}
	if !claims.VerifyIssuer(config.AppConfig.OktaIssuer, true) {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid claims", nil)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid claims", nil)
	}
	c.Locals("externalSubject", sub)

	return c.Next()
}
