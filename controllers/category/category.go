package categoryController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	categoryValidator "lms/validators/category"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type categoryWithCounts struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CourseCount  int64  `json:"course_count"`
	StudentCount int64  `json:"student_count"`
}

func withCounts(db *gorm.DB, category models.Category) categoryWithCounts {
	var courseCount int64
	db.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&courseCount)

	var studentCount int64
	db.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("courses.category_id = ?", category.ID).
		Count(&studentCount)

	return categoryWithCounts{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		CourseCount:  courseCount,
		StudentCount: studentCount,
	}
}

func GetCategories(c *fiber.Ctx) error {
	db := database.Database.Db

	var categories []models.Category
	if err := db.Find(&categories).Error; err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching categories")
	}

	result := make([]categoryWithCounts, len(categories))
	for i, category := range categories {
		result[i] = withCounts(db, category)
	}

	return c.JSON(result)
}

func GetCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Category not found")
	}

	var courses []models.Course
	if err := db.Where("category_id = ?", category.ID).Find(&courses).Error; err != nil {
		log.Printf("Error fetching category courses: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching category")
	}

	response := struct {
		categoryWithCounts
		Courses []models.Course `json:"courses"`
	}{withCounts(db, category), courses}

	return c.JSON(response)
}

func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error creating category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
	})
}

func UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	reqData, ok := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Category not found")
	}

	category.Name = reqData.Name
	category.Description = reqData.Description

	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error updating category: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error updating category")
	}

	return c.JSON(fiber.Map{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
	})
}

// DeleteCategory removes a category unless courses still reference it.
func DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid category id")
	}

	db := database.Database.Db

	txErr := db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var courseCount int64
		if err := tx.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&courseCount).Error; err != nil {
			return err
		}
		if courseCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Cannot delete category with courses")
		}

		return tx.Delete(&category).Error
	})

	if txErr != nil {
		if fe, ok := txErr.(*fiber.Error); ok {
			return middleware.Error(c, fe.Code, fe.Message)
		}
		log.Printf("Error deleting category: %v", txErr)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error deleting category")
	}

	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
