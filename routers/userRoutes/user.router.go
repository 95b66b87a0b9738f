package userRoutes

import (
	userController "lms/controllers/user"
	"lms/middleware"
	userValidator "lms/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes mounts the authenticated profile endpoints.
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/api/users", middleware.JWTMiddleware)

	users.Get("/profile", userController.GetProfile)
	users.Put("/profile", userValidator.UpdateProfile(), userController.UpdateProfile)
	users.Patch("/profile/avatar", userController.UpdateAvatar)
	users.Get("/courses", userController.GetMyCourses)
}
