package courseController

import (
	"log"
	"titanium/database"
	"titanium/middleware"
	"titanium/models/course"
	courseValidator "titanium/validators/course"

	"github.com/gofiber/fiber/v2"
)

// ListReviews is public and returns all reviews newest first.
func ListReviews(c *fiber.Ctx) error {
	var reviews []course.Review
	if err := database.Database.Db.Order("created_at DESC").Find(&reviews).Error; err != nil {
		log.Printf("Error listing reviews: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Reviews retrieved successfully", reviews)
}

func GetReview(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid review id!", nil)
	}

	var review course.Review
	if err := database.Database.Db.First(&review, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Review not found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Review details retrieved", review)
}

// CreateReview stamps the author from the token, never from the body.
func CreateReview(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedReview").(*courseValidator.CreateReviewRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var module course.Module
	if err := database.Database.Db.First(&module, reqData.ModuleID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found.", nil)
	}

	review := course.Review{
		UserID:   userId,
		ModuleID: reqData.ModuleID,
		Rating:   reqData.Rating,
		Review:   reqData.Review,
	}

	if err := database.Database.Db.Create(&review).Error; err != nil {
		log.Printf("Error creating review for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Review created successfully", review)
}
