package adminValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

// UserStatus validates the body for the user status toggle.
func UserStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(StatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid status value")
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}
