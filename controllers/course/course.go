package courseController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type courseWithStats struct {
	models.Course
	CategoryName     string  `json:"category_name"`
	EnrolledStudents int64   `json:"enrolled_students"`
	AverageRating    float64 `json:"average_rating"`
	ReviewCount      int64   `json:"review_count"`
}

type reviewWithUser struct {
	models.Review
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar"`
}

// withStats decorates a course with its catalog aggregates.
func withStats(db *gorm.DB, course models.Course) courseWithStats {
	out := courseWithStats{Course: course}

	var category models.Category
	if err := db.First(&category, course.CategoryID).Error; err == nil {
		out.CategoryName = category.Name
	} else {
		out.CategoryName = "Uncategorized"
	}

	db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&out.EnrolledStudents)
	db.Model(&models.Review{}).Where("course_id = ?", course.ID).
		Select("COALESCE(AVG(rating), 0)").Scan(&out.AverageRating)
	db.Model(&models.Review{}).Where("course_id = ?", course.ID).Count(&out.ReviewCount)

	return out
}

func GetCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching courses")
	}

	result := make([]courseWithStats, len(courses))
	for i, course := range courses {
		result[i] = withStats(db, course)
	}

	return c.JSON(result)
}

func GetCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Course not found")
	}

	var reviews []models.Review
	if err := db.Where("course_id = ?", course.ID).Order("created_at desc").Find(&reviews).Error; err != nil {
		log.Printf("Error fetching course reviews: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching course")
	}

	reviewList := make([]reviewWithUser, len(reviews))
	for i, review := range reviews {
		reviewList[i] = reviewWithUser{Review: review}
		var reviewer models.User
		if err := db.First(&reviewer, review.UserID).Error; err == nil {
			reviewList[i].UserName = reviewer.Name
			reviewList[i].UserAvatar = reviewer.Avatar
		}
	}

	response := struct {
		courseWithStats
		Reviews []reviewWithUser `json:"reviews"`
	}{withStats(db, course), reviewList}

	return c.JSON(response)
}
