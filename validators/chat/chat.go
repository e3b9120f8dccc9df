package chatValidator

import (
	"strings"
	"titanium/middleware"

	"github.com/gofiber/fiber/v2"
)

type CreateRoomRequest struct {
	Name     string `json:"name"`
	CourseID uint   `json:"course_id"`
}

// CreateRoom validator middleware
func CreateRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateRoomRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Room name is required!"
		}
		if reqData.CourseID == 0 {
			errors["course_id"] = "Course id is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRoom", reqData)
		return c.Next()
	}
}

type CreateMessageRequest struct {
	Content string `json:"content"`
	// a user field supplied by the caller is ignored; the author always
	// comes from the access token
	UserID uint `json:"user_id"`
}

// CreateMessage validator middleware
func CreateMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateMessageRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Content) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content": "Message content is required!",
			})
		}

		c.Locals("validatedMessage", reqData)
		return c.Next()
	}
}
