package adminController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	adminRoutes "lms/routers/adminRoutes"

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
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func jsonReq(t *testing.T, method, target, token string, payload interface{}) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func seedUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role, Status: models.StatusActive}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user)
	require.NoError(t, err)
	return user, token
}

func TestAdminProfile(t *testing.T) {
	app := setupTest(t)
	admin, adminToken := seedUser(t, "Admin", "admin@x.com", models.RoleAdmin)

	resp, err := app.Test(jsonReq(t, "GET", "/api/admin/profile", adminToken, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.EqualValues(t, admin.ID, body["id"])
	assert.Equal(t, "admin@x.com", body["email"])
	assert.Equal(t, models.RoleAdmin, body["role"])
	assert.NotContains(t, body, "password")
}

func TestAdminGetUsers(t *testing.T) {
	app := setupTest(t)
	_, adminToken := seedUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	for i := 0; i < 12; i++ {
		seedUser(t, fmt.Sprintf("User %02d", i), fmt.Sprintf("user%02d@x.com", i), models.RoleUser)
	}

	resp, err := app.Test(jsonReq(t, "GET", "/api/admin/users?page=1&limit=10", adminToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	users, ok := body["users"].([]interface{})
	require.True(t, ok)
	assert.Len(t, users, 10)

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 13, pagination["total"])
	assert.EqualValues(t, 2, pagination["pages"])

	first, _ := users[0].(map[string]interface{})
	assert.NotContains(t, first, "password")
	assert.Contains(t, first, "enrolled_courses")
}

func TestAdminGetUsersSearch(t *testing.T) {
	app := setupTest(t)
	_, adminToken := seedUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	seedUser(t, "Alice", "alice@x.com", models.RoleUser)
	seedUser(t, "Bob", "bob@x.com", models.RoleUser)

	resp, err := app.Test(jsonReq(t, "GET", "/api/admin/users?search=ALICE", adminToken, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	users, _ := body["users"].([]interface{})
	require.Len(t, users, 1)
	first, _ := users[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["name"])
}

func TestAdminUpdateUserStatus(t *testing.T) {
	app := setupTest(t)
	db := database.Database.Db
	_, adminToken := seedUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	target, _ := seedUser(t, "Target", "target@x.com", models.RoleUser)

	resp, err := app.Test(jsonReq(t, "PATCH", fmt.Sprintf("/api/admin/users/%d/status", target.ID), adminToken, fiber.Map{
		"status": models.StatusBlocked,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, target.ID).Error)
	assert.Equal(t, models.StatusBlocked, reloaded.Status)

	resp, err = app.Test(jsonReq(t, "PATCH", fmt.Sprintf("/api/admin/users/%d/status", target.ID), adminToken, fiber.Map{
		"status": models.StatusActive,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&reloaded, target.ID).Error)
	assert.Equal(t, models.StatusActive, reloaded.Status)
}

// Admin accounts cannot be blocked or re-activated through the status
// endpoint, whichever status is requested.
func TestAdminStatusImmutable(t *testing.T) {
	app := setupTest(t)
	admin, adminToken := seedUser(t, "Admin", "admin@x.com", models.RoleAdmin)

	for _, status := range []string{models.StatusBlocked, models.StatusActive} {
		resp, err := app.Test(jsonReq(t, "PATCH", fmt.Sprintf("/api/admin/users/%d/status", admin.ID), adminToken, fiber.Map{
			"status": status,
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, "Cannot update admin user status", decodeBody(t, resp)["message"])
	}
}

func TestAdminUpdateUserStatusErrors(t *testing.T) {
	app := setupTest(t)
	_, adminToken := seedUser(t, "Admin", "admin@x.com", models.RoleAdmin)
	target, _ := seedUser(t, "Target", "target@x.com", models.RoleUser)

	resp, err := app.Test(jsonReq(t, "PATCH", "/api/admin/users/999/status", adminToken, fiber.Map{
		"status": models.StatusBlocked,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(jsonReq(t, "PATCH", fmt.Sprintf("/api/admin/users/%d/status", target.ID), adminToken, fiber.Map{
		"status": "suspended",
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
