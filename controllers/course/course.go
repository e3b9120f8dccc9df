package courseController

import (
	"log"
	"strings"
	"titanium/database"
	"titanium/middleware"
	"titanium/models/chat"
	"titanium/models/course"
	courseValidator "titanium/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	newCourse := course.Course{
		UserID:          userId,
		CourseTitle:     reqData.CourseTitle,
		Detail:          reqData.Detail,
		BannerImage:     reqData.BannerImage,
		Modules:         reqData.Modules,
		Level:           reqData.Level,
		ClassPerModules: reqData.ClassPerModules,
	}
	if newCourse.Level == "" {
		newCourse.Level = course.LevelStandard
	}
	if reqData.IsDocument != nil {
		newCourse.IsDocument = *reqData.IsDocument
	} else {
		newCourse.IsDocument = true
	}

	if err := database.Database.Db.Create(&newCourse).Error; err != nil {
		log.Printf("Error creating course for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Course created successfully", newCourse)
}

// GetCourse returns the course together with its modules in one response
func GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", nil)
	}

	var crs course.Course
	if err := database.Database.Db.First(&crs, id).Error; err != nil {
		log.Printf("Course %d not found", id)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found.", nil)
	}

	var modules []course.Module
	if err := database.Database.Db.Where("course_id = ?", crs.ID).Find(&modules).Error; err != nil {
		log.Printf("Error fetching modules for course %d: %v", crs.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Course and modules fetched successfully", fiber.Map{
		"course":  crs,
		"modules": modules,
	})
}

func UpdateCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	// Only the owner may edit
	var crs course.Course
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&crs).Error; err != nil {
		log.Printf("Course update denied for %s: course %d not found or not owned", email, id)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found or you do not have permission to edit this course", nil)
	}

	if reqData.CourseTitle != nil {
		crs.CourseTitle = *reqData.CourseTitle
	}
	if reqData.Detail != nil {
		crs.Detail = *reqData.Detail
	}
	if reqData.BannerImage != nil {
		crs.BannerImage = *reqData.BannerImage
	}
	if reqData.Modules != nil {
		crs.Modules = *reqData.Modules
	}
	if reqData.Level != nil {
		crs.Level = *reqData.Level
	}
	if reqData.ClassPerModules != nil {
		crs.ClassPerModules = *reqData.ClassPerModules
	}
	if reqData.IsDocument != nil {
		crs.IsDocument = *reqData.IsDocument
	}
	if reqData.IsOngoing != nil {
		crs.IsOngoing = *reqData.IsOngoing
	}
	if reqData.IsCompleted != nil {
		crs.IsCompleted = *reqData.IsCompleted
	}

	if err := database.Database.Db.Save(&crs).Error; err != nil {
		log.Printf("Error updating course %d for %s: %v", id, email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Course updated successfully", crs)
}

func DeleteCourse(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid course id!", nil)
	}

	// Only the owner may delete
	var crs course.Course
	if err := database.Database.Db.Where("id = ? AND user_id = ?", id, userId).First(&crs).Error; err != nil {
		log.Printf("Course delete denied for %s: course %d not found or not owned", email, id)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Course not found or you do not have permission to delete this course", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return CascadeDeleteCourse(tx, crs.ID)
	})
	if err != nil {
		log.Printf("Error deleting course %d for %s: %v", id, email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Course deleted successfully", nil)
}

// ListCourses filters by level (exact), detail and course_title (substring).
// Filters compose conjunctively.
func ListCourses(c *fiber.Ctx) error {
	level := c.Query("level")
	detail := c.Query("detail")
	courseTitle := c.Query("course_title")

	db := database.Database.Db.Model(&course.Course{})
	if level != "" {
		db = db.Where("level = ?", level)
	}
	if detail != "" {
		db = db.Where("LOWER(detail) LIKE ?", "%"+strings.ToLower(detail)+"%")
	}
	if courseTitle != "" {
		db = db.Where("LOWER(course_title) LIKE ?", "%"+strings.ToLower(courseTitle)+"%")
	}

	var courses []course.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error listing courses: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch courses!", nil)
	}

	if len(courses) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No courses found", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Courses retrieved successfully", courses)
}

// CascadeDeleteCourse removes a course along with its module tree and chat
// rooms
func CascadeDeleteCourse(tx *gorm.DB, courseID uint) error {
	var moduleIDs []uint
	if err := tx.Model(&course.Module{}).Where("course_id = ?", courseID).Pluck("id", &moduleIDs).Error; err != nil {
		return err
	}

	if len(moduleIDs) > 0 {
		var assignmentIDs []uint
		if err := tx.Model(&course.Assignment{}).Where("module_id IN ?", moduleIDs).Pluck("id", &assignmentIDs).Error; err != nil {
			return err
		}
		if len(assignmentIDs) > 0 {
			if err := tx.Unscoped().Where("assignment_id IN ?", assignmentIDs).Delete(&course.AssignmentAnswer{}).Error; err != nil {
				return err
			}
		}

		for _, model := range []interface{}{
			&course.Video{},
			&course.Attachment{},
			&course.Assignment{},
			&course.Review{},
		} {
			if err := tx.Unscoped().Where("module_id IN ?", moduleIDs).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&course.Module{}).Error; err != nil {
			return err
		}
	}

	var roomIDs []uint
	if err := tx.Model(&chat.ChatRoom{}).Where("course_id = ?", courseID).Pluck("id", &roomIDs).Error; err != nil {
		return err
	}
	if len(roomIDs) > 0 {
		if err := tx.Unscoped().Where("room_id IN ?", roomIDs).Delete(&chat.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", roomIDs).Delete(&chat.ChatRoom{}).Error; err != nil {
			return err
		}
	}

	return tx.Unscoped().Where("id = ?", courseID).Delete(&course.Course{}).Error
}
