package adminRoutes

import (
	adminController "lms/controllers/admin"
	courseController "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"
	authValidator "lms/validators/auth"
	courseValidator "lms/validators/course"

	authController "lms/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes mounts the admin dashboard API. Everything except login
// sits behind the auth middleware plus the admin role gate.
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/api/admin")

	admin.Post("/login", authValidator.Login(), authController.AdminLogin)

	gated := admin.Group("", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	gated.Get("/profile", adminController.AdminProfile)
	gated.Get("/stats", courseController.AdminDashboardStats)

	gated.Get("/users", adminController.AdminGetUsers)
	gated.Patch("/users/:id/status", adminValidator.UserStatus(), adminController.AdminUpdateUserStatus)

	gated.Get("/courses", courseController.AdminGetCourses)
	gated.Get("/courses/:id", courseController.AdminGetCourse)
	gated.Post("/courses", courseValidator.Course(), courseController.AdminCreateCourse)
	gated.Put("/courses/:id", courseValidator.Course(), courseController.AdminUpdateCourse)
	gated.Delete("/courses/:id", courseController.AdminDeleteCourse)
}
