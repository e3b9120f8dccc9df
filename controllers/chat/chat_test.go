package chatController

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"titanium/config"
	"titanium/database"
	"titanium/middleware"
	"titanium/models"
	"titanium/models/chat"
	"titanium/models/course"
	chatValidator "titanium/validators/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupChatTest(t *testing.T) (*fiber.App, models.User, string) {
	config.AppConfig = &config.Config{
		JWTKey:             "test-secret",
		AccessTokenMinutes: 15,
		RefreshTokenHours:  168,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	user := models.User{Email: "chatter@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	tokens, err := middleware.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/rooms", middleware.JWTMiddleware, ListRooms)
	app.Post("/rooms", chatValidator.CreateRoom(), middleware.JWTMiddleware, CreateRoom)
	app.Get("/rooms/:room_id/messages", middleware.JWTMiddleware, ListMessages)
	app.Post("/rooms/:room_id/messages", chatValidator.CreateMessage(), middleware.JWTMiddleware, CreateMessage)

	return app, user, tokens.Access
}

func chatRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestCreateRoomRequiresCourse(t *testing.T) {
	app, user, token := setupChatTest(t)

	code, _ := chatRequest(t, app, fiber.MethodPost, "/rooms", fiber.Map{
		"name":      "general",
		"course_id": 42,
	}, token)
	assert.Equal(t, fiber.StatusNotFound, code)

	crs := course.Course{UserID: user.ID, CourseTitle: "Welding"}
	require.NoError(t, database.Database.Db.Create(&crs).Error)

	code, out := chatRequest(t, app, fiber.MethodPost, "/rooms", fiber.Map{
		"name":      "general",
		"course_id": crs.ID,
	}, token)
	require.Equal(t, fiber.StatusCreated, code)
	data := out["data"].(map[string]interface{})
	assert.Equal(t, "general", data["name"])

	code, out = chatRequest(t, app, fiber.MethodGet, "/rooms", nil, token)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, out["data"].([]interface{}), 1)
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	app, user, token := setupChatTest(t)

	crs := course.Course{UserID: user.ID, CourseTitle: "Welding"}
	require.NoError(t, database.Database.Db.Create(&crs).Error)
	room := chat.ChatRoom{Name: "general", CourseID: crs.ID}
	require.NoError(t, database.Database.Db.Create(&room).Error)

	now := time.Now()
	older := chat.ChatMessage{RoomID: room.ID, UserID: user.ID, Content: "first", Timestamp: now.Add(-time.Hour)}
	newer := chat.ChatMessage{RoomID: room.ID, UserID: user.ID, Content: "second", Timestamp: now}
	require.NoError(t, database.Database.Db.Create(&newer).Error)
	require.NoError(t, database.Database.Db.Create(&older).Error)

	code, out := chatRequest(t, app, fiber.MethodGet, "/rooms/1/messages", nil, token)
	require.Equal(t, fiber.StatusOK, code)

	messages := out["data"].([]interface{})
	require.Len(t, messages, 2)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "first", first["content"])
}

func TestCreateMessageStampsAuthor(t *testing.T) {
	app, user, token := setupChatTest(t)

	crs := course.Course{UserID: user.ID, CourseTitle: "Welding"}
	require.NoError(t, database.Database.Db.Create(&crs).Error)
	room := chat.ChatRoom{Name: "general", CourseID: crs.ID}
	require.NoError(t, database.Database.Db.Create(&room).Error)

	// the user_id in the body must be ignored
	code, out := chatRequest(t, app, fiber.MethodPost, "/rooms/1/messages", fiber.Map{
		"content": "hello",
		"user_id": 999,
	}, token)
	require.Equal(t, fiber.StatusCreated, code)

	data := out["data"].(map[string]interface{})
	assert.EqualValues(t, user.ID, data["user_id"])
	assert.Equal(t, "hello", data["content"])
}

func TestMessagesUnknownRoom(t *testing.T) {
	app, _, token := setupChatTest(t)

	code, _ := chatRequest(t, app, fiber.MethodGet, "/rooms/5/messages", nil, token)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = chatRequest(t, app, fiber.MethodPost, "/rooms/5/messages", fiber.Map{
		"content": "hello",
	}, token)
	assert.Equal(t, fiber.StatusNotFound, code)
}
