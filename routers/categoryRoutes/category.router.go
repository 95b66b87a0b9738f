package categoryRoutes

import (
	categoryController "lms/controllers/category"
	categoryValidator "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes mounts the category catalog and CRUD endpoints.
func SetupCategoryRoutes(app *fiber.App) {
	categories := app.Group("/api/categories")

	categories.Get("/", categoryController.GetCategories)
	categories.Get("/:id", categoryController.GetCategory)
	categories.Post("/", categoryValidator.Category(), categoryController.CreateCategory)
	categories.Put("/:id", categoryValidator.Category(), categoryController.UpdateCategory)
	categories.Delete("/:id", categoryController.DeleteCategory)
}
