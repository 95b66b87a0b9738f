package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes mounts the public catalog and the enrollment flow.
func SetupCourseRoutes(app *fiber.App) {
	courses := app.Group("/api/courses")

	courses.Get("/", courseController.GetCourses)
	courses.Get("/:id", courseController.GetCourse)

	courses.Post("/:id/enroll", middleware.JWTMiddleware, courseController.EnrollInCourse)
	courses.Post("/:id/unsubscribe", middleware.JWTMiddleware, courseController.Unsubscribe)
	courses.Post("/:id/progress", middleware.JWTMiddleware, courseValidator.Progress(), courseController.UpdateProgress)
}
