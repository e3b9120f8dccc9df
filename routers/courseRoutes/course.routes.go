package courseRoutes

import (
	courseControllers "titanium/controllers/course"
	"titanium/middleware"
	courseValidators "titanium/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Post("/", courseValidators.CreateCourse(), middleware.JWTMiddleware, courseControllers.CreateCourse)
	courseGroup.Get("/list", middleware.JWTMiddleware, courseControllers.ListCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetCourse)
	courseGroup.Patch("/:id", courseValidators.UpdateCourse(), middleware.JWTMiddleware, courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteCourse)

	moduleGroup := app.Group("/modules")

	moduleGroup.Post("/", courseValidators.CreateModules(), middleware.JWTMiddleware, courseControllers.CreateModules)
	moduleGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetModule)
	moduleGroup.Patch("/:id", courseValidators.UpdateModule(), middleware.JWTMiddleware, courseControllers.UpdateModule)
	moduleGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteModule)

	assignmentGroup := app.Group("/assignments")

	assignmentGroup.Post("/", courseValidators.CreateAssignment(), middleware.JWTMiddleware, courseControllers.CreateAssignment)
	assignmentGroup.Get("/module/:id", middleware.JWTMiddleware, courseControllers.ListModuleAssignments)
	assignmentGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetAssignment)
	assignmentGroup.Patch("/:id", courseValidators.UpdateAssignment(), middleware.JWTMiddleware, courseControllers.UpdateAssignment)
	assignmentGroup.Delete("/:id", middleware.JWTMiddleware, courseControllers.DeleteAssignment)

	app.Post("/answers", courseValidators.CreateAnswer(), middleware.JWTMiddleware, courseControllers.CreateAnswer)

	reviewGroup := app.Group("/reviews")

	reviewGroup.Get("/", courseControllers.ListReviews)
	reviewGroup.Get("/:id", courseControllers.GetReview)
	reviewGroup.Post("/", courseValidators.CreateReview(), middleware.JWTMiddleware, courseControllers.CreateReview)
}
