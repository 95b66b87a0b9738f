package courseController

import (
	"encoding/json"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activityMetadata serializes audit context for a user_activity row.
func activityMetadata(fields fiber.Map) datatypes.JSON {
	b, err := json.Marshal(fields)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// EnrollInCourse creates an active enrollment plus the zero-progress row
// and the audit entry. The three writes share one transaction so a partial
// failure leaves no inconsistent state.
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Course not found")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		// Lock the course row so concurrent enrolls for the same course
		// serialize; without it two transactions can both pass the active
		// check under REPEATABLE READ and commit duplicate rows.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&course, course.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}

		// Only currently-active rows block enrollment; re-enrolling after
		// an unsubscribe creates a fresh row.
		var existing models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND status = ?",
			userID, course.ID, models.EnrollmentActive).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusConflict, "Already enrolled in this course")
		}

		enrollment := models.Enrollment{
			UserID:     userID,
			CourseID:   course.ID,
			Status:     models.EnrollmentActive,
			EnrolledAt: time.Now(),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		progress := models.UserProgress{
			UserID:       userID,
			CourseID:     course.ID,
			LastAccessed: time.Now(),
		}
		if err := tx.Create(&progress).Error; err != nil {
			return err
		}

		activity := models.UserActivity{
			UserID:       userID,
			CourseID:     course.ID,
			ActivityType: models.ActivityEnrollment,
			Description:  "Enrolled in the course",
			Metadata: activityMetadata(fiber.Map{
				"course_id":    course.ID,
				"course_title": course.Title,
			}),
		}
		return tx.Create(&activity).Error
	})

	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return middleware.Error(c, fe.Code, fe.Message)
		}
		log.Printf("Error enrolling in course: %v", txErr)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error enrolling in course")
	}

	var user models.User
	if err := db.First(&user, userID).Error; err == nil {
		go utils.SendEnrollmentEmail(user, course)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Successfully enrolled in course",
	})
}

// Unsubscribe marks the active enrollment as unsubscribed. The row is kept;
// the state change is terminal for that enrollment instance.
func Unsubscribe(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	txErr := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Where("user_id = ? AND course_id = ? AND status = ?",
			userID, courseID, models.EnrollmentActive).First(&enrollment).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Active enrollment not found")
		}

		enrollment.Status = models.EnrollmentUnsubscribed
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		var course models.Course
		tx.First(&course, enrollment.CourseID)

		activity := models.UserActivity{
			UserID:       userID,
			CourseID:     enrollment.CourseID,
			ActivityType: models.ActivityUnsubscribe,
			Description:  "Unsubscribed from course",
			Metadata: activityMetadata(fiber.Map{
				"course_id":    enrollment.CourseID,
				"course_title": course.Title,
			}),
		}
		return tx.Create(&activity).Error
	})

	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return middleware.Error(c, fe.Code, fe.Message)
		}
		log.Printf("Unsubscribe error: %v", txErr)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error unsubscribing from course")
	}

	return c.JSON(fiber.Map{
		"message": "Successfully unsubscribed from course",
	})
}

// UpdateProgress upserts the per-course progress row. Reaching 100 logs a
// completion activity.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	reqData, ok := c.Locals("validatedProgress").(*courseValidator.ProgressRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}
	percentage := *reqData.ProgressPercentage

	txErr := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var progress models.UserProgress
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
		if err == nil {
			progress.ProgressPercentage = percentage
			progress.LastAccessed = time.Now()
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		} else {
			progress = models.UserProgress{
				UserID:             userID,
				CourseID:           uint(courseID),
				ProgressPercentage: percentage,
				LastAccessed:       time.Now(),
			}
			if err := tx.Create(&progress).Error; err != nil {
				return err
			}
		}

		if percentage == 100 {
			activity := models.UserActivity{
				UserID:       userID,
				CourseID:     uint(courseID),
				ActivityType: models.ActivityCompletion,
				Description:  "Completed course",
				Metadata: activityMetadata(fiber.Map{
					"course_id": courseID,
					"progress":  percentage,
				}),
			}
			return tx.Create(&activity).Error
		}
		return nil
	})

	if txErr != nil {
		log.Printf("Progress update error: %v", txErr)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error updating progress")
	}

	return c.JSON(fiber.Map{
		"message": "Progress updated successfully",
	})
}
