package categoryController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	categoryRoutes "lms/routers/categoryRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	categoryRoutes.SetupCategoryRoutes(app)
	return app
}

func jsonReq(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestCategoryCRUD(t *testing.T) {
	app := setupTest(t)

	resp, err := app.Test(jsonReq(t, "POST", "/api/categories/", fiber.Map{
		"name":        "Programming",
		"description": "Code things",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "Programming", created["name"])
	require.NotZero(t, created["id"])

	resp, err = app.Test(jsonReq(t, "PUT", "/api/categories/1", fiber.Map{
		"name":        "Software",
		"description": "Code things",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Software", decodeBody(t, resp)["name"])

	resp, err = app.Test(httptest.NewRequest("GET", "/api/categories/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/categories/999", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateCategoryValidation(t *testing.T) {
	app := setupTest(t)

	resp, err := app.Test(jsonReq(t, "POST", "/api/categories/", fiber.Map{
		"description": "nameless",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Deleting a category that still has courses must be refused and must
// leave the category row untouched.
func TestDeleteCategoryWithCourses(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db

	instructor := models.User{Name: "T", Email: "t@x.com", Password: "x", Role: models.RoleInstructor, Status: models.StatusActive}
	require.NoError(t, db.Create(&instructor).Error)

	category := models.Category{Name: "Busy", Description: "has courses"}
	require.NoError(t, db.Create(&category).Error)

	course := models.Course{Title: "C1", Description: "d", Price: 10, CategoryID: category.ID, InstructorID: instructor.ID}
	require.NoError(t, db.Create(&course).Error)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/categories/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Cannot delete category with courses", decodeBody(t, resp)["message"])

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Once the course is gone the delete goes through
	require.NoError(t, db.Delete(&course).Error)
	resp, err = app.Test(httptest.NewRequest("DELETE", "/api/categories/1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
