package middleware

import "github.com/gofiber/fiber/v2"

// JsonResponse writes the uniform success envelope
func JsonResponse(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status_code": statusCode,
		"message":     message,
		"data":        data,
	})
}

// ErrorResponse writes the uniform error envelope
func ErrorResponse(c *fiber.Ctx, statusCode int, detail string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"detail":      detail,
		"status_code": statusCode,
		"data":        data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return ErrorResponse(c, fiber.StatusBadRequest, "Validation failed!", errors)
}
