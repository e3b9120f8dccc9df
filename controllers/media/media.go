package mediaController

import (
	"log"

	"titanium/middleware"
	"titanium/utils"

	"github.com/gofiber/fiber/v2"
)

var allowedEntityTypes = map[string]bool{
	"user":       true,
	"course":     true,
	"module":     true,
	"video":      true,
	"attachment": true,
	"assignment": true,
}

// Upload stores a multipart file under the given entity type and returns
// the path plus the URL it will be served from.
func Upload(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	entityType := c.FormValue("entity_type")
	if !allowedEntityTypes[entityType] {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid entity type!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "File is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, entityType)
	if err != nil {
		log.Printf("Error saving upload for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "File uploaded successfully", fiber.Map{
		"file_path": filePath,
		"file_url":  utils.GetFileURL(filePath),
	})
}
