package courseController

import (
	"log"
	"titanium/database"
	"titanium/middleware"
	"titanium/models/course"
	courseValidator "titanium/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateModules creates a batch of modules with their nested videos and
// attachments. The whole batch runs in one transaction; the first failure
// rolls everything back.
func CreateModules(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedModules").([]courseValidator.ModuleSpec)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var created []course.Module
	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		for _, spec := range reqData {
			var parent course.Course
			if err := tx.First(&parent, spec.CourseID).Error; err != nil {
				return err
			}

			module := course.Module{
				CourseID:  spec.CourseID,
				Title:     spec.Title,
				Detail:    spec.Detail,
				Thumbnail: spec.Thumbnail,
			}
			if spec.IsAssessment != nil {
				module.IsAssessment = *spec.IsAssessment
			} else {
				module.IsAssessment = true
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}

			for _, v := range spec.Videos {
				video := course.Video{
					ModuleID:  module.ID,
					Title:     v.Title,
					VideoURL:  v.VideoURL,
					Thumbnail: v.Thumbnail,
					Duration:  v.Duration,
				}
				if err := tx.Create(&video).Error; err != nil {
					return err
				}
			}

			for _, a := range spec.Attachments {
				attachment := course.Attachment{
					ModuleID: module.ID,
					Title:    a.Title,
					Document: a.Document,
				}
				if err := tx.Create(&attachment).Error; err != nil {
					return err
				}
			}

			created = append(created, module)
		}
		return nil
	})
	if err != nil {
		log.Printf("Module batch create failed for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Modules created successfully", created)
}

// GetModule returns the module with its videos, attachments and assignments
func GetModule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id!", nil)
	}

	var module course.Module
	if err := database.Database.Db.First(&module, id).Error; err != nil {
		log.Printf("Module %d not found", id)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found.", nil)
	}

	var videos []course.Video
	var attachments []course.Attachment
	var assignments []course.Assignment

	db := database.Database.Db
	if err := db.Where("module_id = ?", module.ID).Find(&videos).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch module content!", nil)
	}
	if err := db.Where("module_id = ?", module.ID).Find(&attachments).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch module content!", nil)
	}
	if err := db.Where("module_id = ?", module.ID).Find(&assignments).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch module content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Module and related data fetched successfully", fiber.Map{
		"module":      module,
		"videos":      videos,
		"attachments": attachments,
		"assignments": assignments,
	})
}

func UpdateModule(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*courseValidator.UpdateModuleRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var module course.Module
	if err := database.Database.Db.First(&module, id).Error; err != nil {
		log.Printf("Module %d not found for update by %s", id, email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found.", nil)
	}

	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.Detail != nil {
		module.Detail = *reqData.Detail
	}
	if reqData.Thumbnail != nil {
		module.Thumbnail = *reqData.Thumbnail
	}
	if reqData.IsAssessment != nil {
		module.IsAssessment = *reqData.IsAssessment
	}
	if reqData.IsOngoing != nil {
		module.IsOngoing = *reqData.IsOngoing
	}
	if reqData.IsCompleted != nil {
		module.IsCompleted = *reqData.IsCompleted
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		log.Printf("Error updating module %d for %s: %v", id, email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Module updated successfully", module)
}

func DeleteModule(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id!", nil)
	}

	var module course.Module
	if err := database.Database.Db.First(&module, id).Error; err != nil {
		log.Printf("Module %d not found for delete by %s", id, email)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found.", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var assignmentIDs []uint
		if err := tx.Model(&course.Assignment{}).Where("module_id = ?", module.ID).Pluck("id", &assignmentIDs).Error; err != nil {
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
			if err := tx.Unscoped().Where("module_id = ?", module.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&module).Error
	})
	if err != nil {
		log.Printf("Error deleting module %d for %s: %v", id, email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Module deleted successfully", nil)
}
