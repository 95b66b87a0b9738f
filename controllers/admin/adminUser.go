package adminController

import (
	"log"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AdminProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND role = ?", userID, models.RoleAdmin).
		First(&user).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "Admin not found")
	}

	return c.JSON(user.Public())
}

// adminUserQuery applies the users search filter over name, email and role.
func adminUserQuery(db *gorm.DB, search string) *gorm.DB {
	q := db.Model(&models.User{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(role) LIKE ?",
			term, term, term,
		)
	}
	return q
}

// AdminGetUsers lists users with offset pagination and case-insensitive
// substring search over name, email and role.
func AdminGetUsers(c *fiber.Ctx) error {
	p := utils.ParsePagination(c)
	db := database.Database.Db

	var total int64
	if err := adminUserQuery(db, p.Search).Count(&total).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching users")
	}

	var users []models.User
	if err := adminUserQuery(db, p.Search).
		Order("created_at DESC").
		Limit(p.Limit).
		Offset(p.Offset()).
		Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error fetching users")
	}

	result := make([]fiber.Map, len(users))
	for i, user := range users {
		var enrolledCourses int64
		db.Model(&models.Enrollment{}).
			Where("user_id = ? AND status = ?", user.ID, models.EnrollmentActive).
			Count(&enrolledCourses)

		entry := fiber.Map(user.Public())
		entry["enrolled_courses"] = enrolledCourses
		result[i] = entry
	}

	return c.JSON(fiber.Map{
		"users":      result,
		"pagination": p.Envelope(total),
	})
}

// AdminUpdateUserStatus flips a user between active and blocked. Admin
// accounts can never be toggled.
func AdminUpdateUserStatus(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	reqData, ok := c.Locals("validatedStatus").(*adminValidator.StatusRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	if user.Role == models.RoleAdmin {
		return middleware.Error(c, fiber.StatusForbidden, "Cannot update admin user status")
	}

	user.Status = reqData.Status
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user status: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error updating user status")
	}

	return c.JSON(fiber.Map{
		"message": "User status updated successfully",
	})
}
