package chatRoutes

import (
	chatControllers "titanium/controllers/chat"
	"titanium/middleware"
	chatValidators "titanium/validators/chat"

	"github.com/gofiber/fiber/v2"
)

func SetupChatRoutes(app *fiber.App) {
	chatGroup := app.Group("/rooms")

	chatGroup.Get("/", middleware.JWTMiddleware, chatControllers.ListRooms)
	chatGroup.Post("/", chatValidators.CreateRoom(), middleware.JWTMiddleware, chatControllers.CreateRoom)
	chatGroup.Get("/:room_id/messages", middleware.JWTMiddleware, chatControllers.ListMessages)
	chatGroup.Post("/:room_id/messages", chatValidators.CreateMessage(), middleware.JWTMiddleware, chatControllers.CreateMessage)
}
