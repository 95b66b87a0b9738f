package courseController

import (
	"log"
	"sort"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type monthlyEnrollments struct {
	Month       string `json:"month"`
	Enrollments int64  `json:"enrollments"`
}

// AdminDashboardStats aggregates the admin dashboard counters and the
// month-bucketed enrollment series for the last six months.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var coursesCount, usersCount, categoriesCount int64
	if err := db.Model(&models.Course{}).Count(&coursesCount).Error; err != nil {
		log.Printf("Error fetching admin stats: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching dashboard statistics")
	}
	db.Model(&models.User{}).Count(&usersCount)
	db.Model(&models.Category{}).Count(&categoriesCount)

	var averageRating float64
	db.Model(&models.Review{}).Select("COALESCE(AVG(rating), 0)").Scan(&averageRating)

	// Bucket enrollments by month, from the start of the month five months
	// back through now.
	windowStart := now.New(time.Now()).BeginningOfMonth().AddDate(0, -5, 0)

	var enrollments []models.Enrollment
	if err := db.Where("enrolled_at >= ?", windowStart).Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollment stats: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching dashboard statistics")
	}

	buckets := make(map[string]int64)
	for _, e := range enrollments {
		buckets[e.EnrolledAt.Format("2006-01")]++
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	stats := make([]monthlyEnrollments, len(months))
	for i, month := range months {
		stats[i] = monthlyEnrollments{Month: month, Enrollments: buckets[month]}
	}

	return c.JSON(fiber.Map{
		"coursesCount":    coursesCount,
		"usersCount":      usersCount,
		"categoriesCount": categoriesCount,
		"averageRating":   averageRating,
		"enrollmentStats": stats,
	})
}
