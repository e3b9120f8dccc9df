package authController

import (
	"titanium/database"
	"titanium/middleware"
	"titanium/models"

	"github.com/gofiber/fiber/v2"
)

// ExternalProfile serves enterprise SSO callers. The Okta middleware has
// already validated the bearer token; the subject claim is the user's email.
func ExternalProfile(c *fiber.Ctx) error {
	subject, _ := c.Locals("externalSubject").(string)

	var user models.User
	var userData interface{}
	if err := database.Database.Db.Where("email = ?", subject).First(&user).Error; err == nil {
		userData = user
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "External identity verified.", fiber.Map{
		"subject": subject,
		"user":    userData,
	})
}
