package instructorRoutes

import (
	instructorController "lms/controllers/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes mounts the public instructor directory.
func SetupInstructorRoutes(app *fiber.App) {
	instructors := app.Group("/api/instructors")

	instructors.Get("/", instructorController.GetInstructors)
	instructors.Get("/:id", instructorController.GetInstructor)
}
