package userController

import (
	"errors"
	"log"
	"path"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	userValidator "lms/validators/user"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type avatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

// GetProfile returns the user's own record plus their enrollments.
func GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ?", userID).
		Preload("Course").
		Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		log.Printf("Profile fetch error: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching profile")
	}

	type profileEnrollment struct {
		models.Course
		EnrolledAt time.Time `json:"enrolled_at"`
		Status     string    `json:"enrollment_status"`
	}

	enrollmentList := make([]profileEnrollment, len(enrollments))
	for i, e := range enrollments {
		enrollmentList[i] = profileEnrollment{
			Course:     e.Course,
			EnrolledAt: e.EnrolledAt,
			Status:     e.Status,
		}
	}

	return c.JSON(fiber.Map{
		"user":        user.Public(),
		"enrollments": enrollmentList,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.ProfileRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	// Keep the unique-email invariant when the address changes
	if reqData.Email != user.Email {
		var existing models.User
		if err := db.Where("email = ? AND id != ?", reqData.Email, userID).First(&existing).Error; err == nil {
			return middleware.Error(c, fiber.StatusConflict, "Email already exists")
		}
	}

	user.Name = reqData.Name
	user.Email = reqData.Email
	user.Bio = reqData.Bio

	if err := db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.Error(c, fiber.StatusConflict, "Email already exists")
		}
		log.Printf("Profile update error: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error updating profile")
	}

	return c.JSON(fiber.Map{
		"user": user.Public(),
	})
}

// UpdateAvatar accepts either a multipart file upload or a remote image
// URL, stores the image under the upload dir, and points the profile at it.
func UpdateAvatar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	var filename string

	if file, err := c.FormFile("avatar"); err == nil {
		saved, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Avatar upload error: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, "Error updating avatar")
		}
		filename = saved
	} else {
		reqData := new(avatarRequest)
		if err := c.BodyParser(reqData); err != nil || reqData.AvatarURL == "" {
			return middleware.Error(c, fiber.StatusBadRequest, "An avatar file or avatar_url is required")
		}
		if !strings.HasPrefix(reqData.AvatarURL, "http://") && !strings.HasPrefix(reqData.AvatarURL, "https://") {
			return middleware.Error(c, fiber.StatusBadRequest, "avatar_url must be an http(s) URL")
		}

		client := resty.New()
		resp, err := client.R().Get(reqData.AvatarURL)
		if err != nil || resp.StatusCode() != fiber.StatusOK {
			return middleware.Error(c, fiber.StatusBadRequest, "Could not fetch avatar from avatar_url")
		}

		saved, err := utils.SaveBytes(resp.Body(), path.Ext(reqData.AvatarURL), config.AppConfig.UploadDir)
		if err != nil {
			log.Printf("Avatar save error: %v", err)
			return middleware.Error(c, fiber.StatusInternalServerError, "Error updating avatar")
		}
		filename = saved
	}

	user.Avatar = utils.FileURL(filename)
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Avatar update error: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error updating avatar")
	}

	return c.JSON(fiber.Map{
		"message": "Avatar updated successfully",
		"avatar":  user.Avatar,
	})
}

// GetMyCourses returns the caller's active enrollments with category,
// progress and rating aggregates.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("user_id = ? AND status = ?", userID, models.EnrollmentActive).
		Preload("Course").
		Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrolled courses: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching enrolled courses")
	}

	type enrolledCourse struct {
		models.Course
		CategoryName     string    `json:"category_name"`
		EnrolledAt       time.Time `json:"enrolled_at"`
		EnrollmentStatus string    `json:"enrollment_status"`
		Progress         float64   `json:"progress"`
		LastAccessed     time.Time `json:"last_accessed"`
		AverageRating    float64   `json:"average_rating"`
		ReviewCount      int64     `json:"review_count"`
	}

	result := make([]enrolledCourse, len(enrollments))
	for i, e := range enrollments {
		entry := enrolledCourse{
			Course:           e.Course,
			EnrolledAt:       e.EnrolledAt,
			EnrollmentStatus: e.Status,
			LastAccessed:     e.EnrolledAt,
		}

		var category models.Category
		if err := db.First(&category, e.Course.CategoryID).Error; err == nil {
			entry.CategoryName = category.Name
		}

		var progress models.UserProgress
		if err := db.Where("user_id = ? AND course_id = ?", userID, e.CourseID).
			First(&progress).Error; err == nil {
			entry.Progress = progress.ProgressPercentage
			entry.LastAccessed = progress.LastAccessed
		}

		db.Model(&models.Review{}).Where("course_id = ?", e.CourseID).
			Select("COALESCE(AVG(rating), 0)").Scan(&entry.AverageRating)
		db.Model(&models.Review{}).Where("course_id = ?", e.CourseID).Count(&entry.ReviewCount)

		result[i] = entry
	}

	return c.JSON(result)
}
