package mediaRoutes

import (
	mediaControllers "titanium/controllers/media"
	"titanium/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMediaRoutes(app *fiber.App) {
	app.Post("/media/upload", middleware.JWTMiddleware, mediaControllers.Upload)
}
