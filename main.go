package main

import (
	"log"

	"titanium/config"
	"titanium/database"
	"titanium/routers/authRoutes"
	"titanium/routers/chatRoutes"
	"titanium/routers/courseRoutes"
	"titanium/routers/mediaRoutes"
	"titanium/routers/subscriptionRoutes"
	"titanium/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded media
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	chatRoutes.SetupChatRoutes(app)
	subscriptionRoutes.SetupSubscriptionRoutes(app)
	mediaRoutes.SetupMediaRoutes(app)

	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
