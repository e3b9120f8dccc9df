package chatController

import (
	"log"
	"time"

	"titanium/database"
	"titanium/middleware"
	"titanium/models/chat"
	"titanium/models/course"
	chatValidator "titanium/validators/chat"

	"github.com/gofiber/fiber/v2"
)

func ListRooms(c *fiber.Ctx) error {
	var rooms []chat.ChatRoom
	if err := database.Database.Db.Find(&rooms).Error; err != nil {
		log.Printf("Error listing chat rooms: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch chat rooms!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Chat rooms retrieved successfully", rooms)
}

func CreateRoom(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedRoom").(*chatValidator.CreateRoomRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var parent course.Course
	if err := database.Database.Db.First(&parent, reqData.CourseID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found.", nil)
	}

	room := chat.ChatRoom{
		Name:     reqData.Name,
		CourseID: reqData.CourseID,
	}

	if err := database.Database.Db.Create(&room).Error; err != nil {
		log.Printf("Error creating chat room for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create chat room!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Chat room created successfully", room)
}

// ListMessages returns the room's messages oldest first so clients can
// render the transcript top to bottom.
func ListMessages(c *fiber.Ctx) error {
	roomId, err := c.ParamsInt("room_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid room id!", nil)
	}

	var room chat.ChatRoom
	if err := database.Database.Db.First(&room, roomId).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Chat room not found", nil)
	}

	var messages []chat.ChatMessage
	if err := database.Database.Db.
		Where("room_id = ?", room.ID).
		Order("timestamp ASC").
		Find(&messages).Error; err != nil {
		log.Printf("Error listing messages for room %d: %v", roomId, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Messages retrieved successfully", messages)
}

// CreateMessage stamps the author from the token. A user id in the body is
// ignored so callers cannot post as someone else.
func CreateMessage(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	roomId, err := c.ParamsInt("room_id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid room id!", nil)
	}

	reqData, ok := c.Locals("validatedMessage").(*chatValidator.CreateMessageRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var room chat.ChatRoom
	if err := database.Database.Db.First(&room, roomId).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Chat room not found", nil)
	}

	message := chat.ChatMessage{
		RoomID:    room.ID,
		UserID:    userId,
		Content:   reqData.Content,
		Timestamp: time.Now(),
	}

	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error creating message for %s in room %d: %v", email, roomId, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Message sent successfully", message)
}
