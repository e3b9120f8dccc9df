package courseController

import (
	"log"
	"titanium/database"
	"titanium/middleware"
	"titanium/models/course"
	courseValidator "titanium/validators/course"

	"github.com/gofiber/fiber/v2"
)

func CreateAssignment(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedAssignment").(*courseValidator.CreateAssignmentRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var module course.Module
	if err := database.Database.Db.First(&module, reqData.ModuleID).Error; err != nil {
		log.Printf("Assignment create failed for %s: module %d not found", email, reqData.ModuleID)
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Module not found.", nil)
	}

	assignment := course.Assignment{
		ModuleID:    reqData.ModuleID,
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		FileRef:     reqData.FileRef,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		log.Printf("Error creating assignment for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Assignment created successfully", assignment)
}

// GetAssignment returns the assignment along with the caller's answer when
// one exists
func GetAssignment(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id!", nil)
	}

	var assignment course.Assignment
	if err := database.Database.Db.First(&assignment, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found", nil)
	}

	var answer course.AssignmentAnswer
	var answerData interface{}
	if err := database.Database.Db.
		Where("assignment_id = ? AND user_id = ?", assignment.ID, userId).
		First(&answer).Error; err == nil {
		answerData = answer
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Assignment details retrieved", fiber.Map{
		"assignment":        assignment,
		"assignment_answer": answerData,
	})
}

func UpdateAssignment(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id!", nil)
	}

	reqData, ok := c.Locals("validatedAssignmentUpdate").(*courseValidator.UpdateAssignmentRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var assignment course.Assignment
	if err := database.Database.Db.First(&assignment, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found", nil)
	}

	if reqData.Title != nil {
		assignment.Title = *reqData.Title
	}
	if reqData.Description != nil {
		assignment.Description = *reqData.Description
	}
	if reqData.ContentType != nil {
		assignment.ContentType = *reqData.ContentType
	}
	if reqData.FileRef != nil {
		assignment.FileRef = *reqData.FileRef
	}

	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		log.Printf("Error updating assignment %d for %s: %v", id, email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Assignment updated successfully", assignment)
}

func DeleteAssignment(c *fiber.Ctx) error {
	email, _ := c.Locals("userEmail").(string)

	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid assignment id!", nil)
	}

	var assignment course.Assignment
	if err := database.Database.Db.First(&assignment, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found", nil)
	}

	db := database.Database.Db
	if err := db.Unscoped().Where("assignment_id = ?", assignment.ID).Delete(&course.AssignmentAnswer{}).Error; err != nil {
		log.Printf("Error deleting answers for assignment %d: %v", id, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete assignment!", nil)
	}
	if err := db.Unscoped().Delete(&assignment).Error; err != nil {
		log.Printf("Error deleting assignment %d for %s: %v", id, email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Assignment deleted successfully", nil)
}

// ListModuleAssignments returns all assignments for a module
func ListModuleAssignments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid module id!", nil)
	}

	var assignments []course.Assignment
	if err := database.Database.Db.Where("module_id = ?", id).Find(&assignments).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch assignments!", nil)
	}
	if len(assignments) == 0 {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "No assignments found for this module", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Assignments retrieved successfully", assignments)
}

// CreateAnswer submits a learner's answer. One answer per (user, assignment)
// pair; a second submission is rejected and leaves the first untouched.
func CreateAnswer(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)
	email, _ := c.Locals("userEmail").(string)

	reqData, ok := c.Locals("validatedAnswer").(*courseValidator.CreateAnswerRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var assignment course.Assignment
	if err := database.Database.Db.First(&assignment, reqData.AssignmentID).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Assignment not found", nil)
	}

	var existing course.AssignmentAnswer
	if err := database.Database.Db.
		Where("assignment_id = ? AND user_id = ?", reqData.AssignmentID, userId).
		First(&existing).Error; err == nil {
		log.Printf("Duplicate answer rejected for %s on assignment %d", email, reqData.AssignmentID)
		return middleware.ErrorResponse(c, fiber.StatusConflict, "Assignment answer already exists for this user and assignment", nil)
	}

	answer := course.AssignmentAnswer{
		AssignmentID: reqData.AssignmentID,
		UserID:       userId,
		TextAnswer:   reqData.TextAnswer,
		FileAnswer:   reqData.FileAnswer,
	}

	if err := database.Database.Db.Create(&answer).Error; err != nil {
		log.Printf("Error creating answer for %s: %v", email, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "Assignment answer created successfully", answer)
}
