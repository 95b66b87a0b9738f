package instructorController

import (
	"log"
	"sort"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type instructorWithStats struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Avatar        string  `json:"avatar"`
	Bio           string  `json:"bio"`
	Title         string  `json:"title"`
	CoursesCount  int64   `json:"courses_count"`
	StudentsCount int64   `json:"students_count"`
	AverageRating float64 `json:"average_rating"`
}

func teachingStats(db *gorm.DB, instructor models.User) instructorWithStats {
	out := instructorWithStats{
		ID:     instructor.ID,
		Name:   instructor.Name,
		Email:  instructor.Email,
		Avatar: instructor.Avatar,
		Bio:    instructor.Bio,
		Title:  instructor.Title,
	}

	db.Model(&models.Course{}).Where("instructor_id = ?", instructor.ID).Count(&out.CoursesCount)

	db.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.instructor_id = ?", instructor.ID).
		Distinct("enrollments.user_id").
		Count(&out.StudentsCount)

	db.Model(&models.Review{}).
		Joins("JOIN courses ON courses.id = reviews.course_id").
		Where("courses.instructor_id = ?", instructor.ID).
		Select("COALESCE(AVG(reviews.rating), 0)").
		Scan(&out.AverageRating)

	return out
}

func GetInstructors(c *fiber.Ctx) error {
	db := database.Database.Db

	var instructors []models.User
	if err := db.Where("role = ?", models.RoleInstructor).Find(&instructors).Error; err != nil {
		log.Printf("Error fetching instructors: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching instructors")
	}

	result := make([]instructorWithStats, len(instructors))
	for i, instructor := range instructors {
		result[i] = teachingStats(db, instructor)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CoursesCount != result[j].CoursesCount {
			return result[i].CoursesCount > result[j].CoursesCount
		}
		return result[i].StudentsCount > result[j].StudentsCount
	})

	return c.JSON(result)
}

func GetInstructor(c *fiber.Ctx) error {
	instructorID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid instructor id")
	}

	db := database.Database.Db

	var instructor models.User
	if err := db.Where("id = ? AND role = ?", instructorID, models.RoleInstructor).
		First(&instructor).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Instructor not found")
	}

	var courses []models.Course
	if err := db.Where("instructor_id = ?", instructor.ID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching instructor courses: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching instructor")
	}

	type instructorCourse struct {
		models.Course
		EnrolledStudents int64   `json:"enrolled_students"`
		AverageRating    float64 `json:"average_rating"`
		ReviewCount      int64   `json:"review_count"`
	}

	courseList := make([]instructorCourse, len(courses))
	for i, course := range courses {
		entry := instructorCourse{Course: course}
		db.Model(&models.Enrollment{}).Where("course_id = ?", course.ID).Count(&entry.EnrolledStudents)
		db.Model(&models.Review{}).Where("course_id = ?", course.ID).
			Select("COALESCE(AVG(rating), 0)").Scan(&entry.AverageRating)
		db.Model(&models.Review{}).Where("course_id = ?", course.ID).Count(&entry.ReviewCount)
		courseList[i] = entry
	}

	response := struct {
		instructorWithStats
		Courses []instructorCourse `json:"courses"`
	}{teachingStats(db, instructor), courseList}

	return c.JSON(response)
}
