package courseController

import (
	"log"
	"strings"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// adminCourseRow is the flattened shape the admin dashboard consumes.
type adminCourseRow struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	CategoryID       uint      `json:"category_id"`
	InstructorID     uint      `json:"instructor_id"`
	Duration         string    `json:"duration"`
	Level            string    `json:"level"`
	ImageURL         string    `json:"image_url" gorm:"column:image_url"`
	CreatedAt        time.Time `json:"created_at"`
	CategoryName     string    `json:"category_name"`
	InstructorName   string    `json:"instructor_name"`
	EnrolledStudents int64     `json:"enrolled_students" gorm:"-"`
	AverageRating    float64   `json:"average_rating" gorm:"-"`
	ReviewCount      int64     `json:"review_count" gorm:"-"`
}

const adminCourseSelect = `courses.id, courses.title, courses.description, courses.price,
	courses.category_id, courses.instructor_id, courses.duration, courses.level,
	courses.image_url, courses.created_at,
	categories.name AS category_name, users.name AS instructor_name`

// adminCourseQuery builds the joined, optionally-searched base query. A
// fresh builder per call keeps the count and page queries independent.
func adminCourseQuery(db *gorm.DB, search string) *gorm.DB {
	q := db.Model(&models.Course{}).
		Joins("LEFT JOIN categories ON categories.id = courses.category_id").
		Joins("LEFT JOIN users ON users.id = courses.instructor_id")

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ? OR LOWER(categories.name) LIKE ? OR LOWER(users.name) LIKE ?",
			term, term, term, term,
		)
	}
	return q
}

func fillCourseStats(db *gorm.DB, row *adminCourseRow) {
	if row.CategoryName == "" {
		row.CategoryName = "Uncategorized"
	}
	if row.InstructorName == "" {
		row.InstructorName = "Unknown Instructor"
	}
	db.Model(&models.Enrollment{}).Where("course_id = ?", row.ID).Count(&row.EnrolledStudents)
	db.Model(&models.Review{}).Where("course_id = ?", row.ID).
		Select("COALESCE(AVG(rating), 0)").Scan(&row.AverageRating)
	db.Model(&models.Review{}).Where("course_id = ?", row.ID).Count(&row.ReviewCount)
}

// AdminGetCourses lists courses with offset pagination and case-insensitive
// substring search over title, description, category and instructor names.
func AdminGetCourses(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	db := database.Database.Db

	var total int64
	if err := adminCourseQuery(db, p.Search).Count(&total).Error; err != nil {
		log.Printf("Error counting courses: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching courses")
	}

	var rows []adminCourseRow
	if err := adminCourseQuery(db, p.Search).
		Select(adminCourseSelect).
		Order("courses.created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching courses")
	}

	for i := range rows {
		fillCourseStats(db, &rows[i])
	}

	return c.JSON(fiber.Map{
		"courses":    rows,
		"pagination": p.Envelope(total),
	})
}

func AdminGetCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	db := database.Database.Db

	var row adminCourseRow
	result := adminCourseQuery(db, "").
		Select(adminCourseSelect).
		Where("courses.id = ?", courseID).
		Scan(&row)
	if result.Error != nil || result.RowsAffected == 0 {
		return middleware.Error(c, fiber.StatusNotFound, "Course not found")
	}

	fillCourseStats(db, &row)
	return c.JSON(row)
}

// validateCourseRefs checks the category and instructor references.
func validateCourseRefs(db *gorm.DB, reqData *courseValidator.CourseRequest) (int, string) {
	var category models.Category
	if err := db.First(&category, reqData.CategoryID).Error; err != nil {
		return fiber.StatusBadRequest, "Invalid category_id"
	}

	var instructor models.User
	if err := db.Where("id = ? AND role IN ?",
		reqData.InstructorID, []string{models.RoleAdmin, models.RoleInstructor}).
		First(&instructor).Error; err != nil {
		return fiber.StatusBadRequest, "Invalid instructor_id"
	}

	return 0, ""
}

func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	if code, msg := validateCourseRefs(db, reqData); code != 0 {
		return middleware.Error(c, code, msg)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        *reqData.Price,
		CategoryID:   reqData.CategoryID,
		InstructorID: reqData.InstructorID,
		Duration:     reqData.Duration,
		Level:        reqData.Level,
		ImageURL:     reqData.ImageURL,
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error creating course")
	}

	var row adminCourseRow
	adminCourseQuery(db, "").Select(adminCourseSelect).Where("courses.id = ?", course.ID).Scan(&row)
	fillCourseStats(db, &row)

	return c.Status(fiber.StatusCreated).JSON(row)
}

func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Course not found")
	}

	if code, msg := validateCourseRefs(db, reqData); code != 0 {
		return middleware.Error(c, code, msg)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Price = *reqData.Price
	course.CategoryID = reqData.CategoryID
	course.InstructorID = reqData.InstructorID
	course.Duration = reqData.Duration
	course.Level = reqData.Level
	course.ImageURL = reqData.ImageURL

	if err := db.Save(&course).Error; err != nil {
		log.Printf("Error updating course: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error updating course")
	}

	var row adminCourseRow
	adminCourseQuery(db, "").Select(adminCourseSelect).Where("courses.id = ?", course.ID).Scan(&row)
	fillCourseStats(db, &row)

	return c.JSON(row)
}

// AdminDeleteCourse removes a course unless it still has active
// enrollments.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	txErr := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, courseID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Course not found")
		}

		var activeCount int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ? AND status = ?", course.ID, models.EnrollmentActive).
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Cannot delete course with active enrollments")
		}

		return tx.Delete(&course).Error
	})

	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return middleware.Error(c, fe.Code, fe.Message)
		}
		log.Printf("Error deleting course: %v", txErr)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error deleting course")
	}

	return c.JSON(fiber.Map{
		"message": "Course deleted successfully",
		"id":      courseID,
	})
}
