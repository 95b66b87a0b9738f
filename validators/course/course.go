package courseValidator

import (
	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type CourseRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Price        *float64 `json:"price" validate:"required,gte=0"`
	CategoryID   uint     `json:"category_id" validate:"required"`
	InstructorID uint     `json:"instructor_id" validate:"required"`
	Duration     string   `json:"duration"`
	Level        string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	ImageURL     string   `json:"image_url"`
}

type ProgressRequest struct {
	ProgressPercentage *float64 `json:"progress_percentage" validate:"required,gte=0,lte=100"`
}

// Course validates the body for course create and update.
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}

		if err := validators.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validators.FieldErrors(err))
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
