package courseValidator

import (
	"reflect"
	"strings"
	"titanium/middleware"
	"titanium/models/course"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			errors[verr.Field()] = "failed on the '" + verr.Tag() + "' rule"
		}
	} else {
		errors["body"] = err.Error()
	}
	return errors
}

type CreateCourseRequest struct {
	CourseTitle     string `json:"course_title" validate:"required,max=250"`
	Detail          string `json:"detail"`
	BannerImage     string `json:"banner_image"`
	Modules         int    `json:"modules" validate:"gte=0"`
	Level           string `json:"level" validate:"omitempty,oneof=BASIC STANDARD ADVANCE"`
	ClassPerModules int    `json:"class_per_modules" validate:"gte=0"`
	IsDocument      *bool  `json:"is_document"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

type UpdateCourseRequest struct {
	CourseTitle     *string `json:"course_title" validate:"omitempty,max=250"`
	Detail          *string `json:"detail"`
	BannerImage     *string `json:"banner_image"`
	Modules         *int    `json:"modules" validate:"omitempty,gte=0"`
	Level           *string `json:"level" validate:"omitempty,oneof=BASIC STANDARD ADVANCE"`
	ClassPerModules *int    `json:"class_per_modules" validate:"omitempty,gte=0"`
	IsDocument      *bool   `json:"is_document"`
	IsOngoing       *bool   `json:"is_ongoing"`
	IsCompleted     *bool   `json:"is_completed"`
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

type VideoSpec struct {
	Title     string `json:"title" validate:"required,max=250"`
	VideoURL  string `json:"video_url" validate:"required"`
	Thumbnail string `json:"thumbnail"`
	Duration  int64  `json:"duration" validate:"gte=0"`
}

type AttachmentSpec struct {
	Title    string `json:"title" validate:"required,max=250"`
	Document string `json:"document"`
}

type ModuleSpec struct {
	CourseID     uint             `json:"course_id" validate:"required"`
	Title        string           `json:"title" validate:"required,max=250"`
	Detail       string           `json:"detail"`
	Thumbnail    string           `json:"thumbnail"`
	IsAssessment *bool            `json:"is_assessment"`
	Videos       []VideoSpec      `json:"videos" validate:"dive"`
	Attachments  []AttachmentSpec `json:"attachments" validate:"dive"`
}

// CreateModules validates a batch of module specs. The first invalid entry
// rejects the whole batch.
func CreateModules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqData []ModuleSpec
		if err := c.BodyParser(&reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}
		if len(reqData) == 0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "At least one module is required!", nil)
		}

		for i := range reqData {
			if err := validate.Struct(&reqData[i]); err != nil {
				return middleware.ValidationErrorResponse(c, validationErrors(err))
			}
		}

		c.Locals("validatedModules", reqData)
		return c.Next()
	}
}

type UpdateModuleRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=250"`
	Detail       *string `json:"detail"`
	Thumbnail    *string `json:"thumbnail"`
	IsAssessment *bool   `json:"is_assessment"`
	IsOngoing    *bool   `json:"is_ongoing"`
	IsCompleted  *bool   `json:"is_completed"`
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

type CreateAssignmentRequest struct {
	ModuleID    uint   `json:"module_id" validate:"required"`
	Title       string `json:"title" validate:"required,max=250"`
	Description string `json:"description" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=TEXT IMAGE TEXT_IMAGE"`
	FileRef     string `json:"file_ref"`
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAssignmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		if reqData.ContentType == "" {
			reqData.ContentType = course.ContentTypeTextImage
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

type UpdateAssignmentRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=250"`
	Description *string `json:"description"`
	ContentType *string `json:"content_type" validate:"omitempty,oneof=TEXT IMAGE TEXT_IMAGE"`
	FileRef     *string `json:"file_ref"`
}

func UpdateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateAssignmentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedAssignmentUpdate", reqData)
		return c.Next()
	}
}

type CreateAnswerRequest struct {
	AssignmentID uint   `json:"assignment_id" validate:"required"`
	TextAnswer   string `json:"text_answer"`
	FileAnswer   string `json:"file_answer"`
}

func CreateAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateAnswerRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		if reqData.TextAnswer == "" && reqData.FileAnswer == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answer": "Either text_answer or file_answer is required!",
			})
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}

type CreateReviewRequest struct {
	ModuleID uint   `json:"module_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Review   string `json:"review" validate:"required"`
}

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
