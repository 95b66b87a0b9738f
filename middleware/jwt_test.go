package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	app.Get("/protected", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"email":  c.Locals("email"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/admin-only", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTRoundTrip(t *testing.T) {
	app := setupApp(t)

	user := models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser}
	user.ID = 7

	token, err := middleware.GenerateJWT(user)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(7), body["userId"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, models.RoleUser, body["role"])
}

func TestJWTMissingHeader(t *testing.T) {
	app := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication token is required", decodeBody(t, resp)["message"])
}

func TestJWTExpiredToken(t *testing.T) {
	app := setupApp(t)

	token := signToken(t, "test-secret", jwt.MapClaims{
		"id":    1,
		"email": "old@example.com",
		"role":  models.RoleUser,
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Token has expired", decodeBody(t, resp)["message"])
}

func TestJWTInvalidToken(t *testing.T) {
	app := setupApp(t)

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, "other-secret", jwt.MapClaims{
			"id":  1,
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		// Well-signed but with a non-numeric id claim; must be rejected,
		// not panic the handler
		{"string id claim", signToken(t, "test-secret", jwt.MapClaims{
			"id":  "7",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{"missing id claim", signToken(t, "test-secret", jwt.MapClaims{
			"email": "noid@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Invalid token", decodeBody(t, resp)["message"])
		})
	}
}

func TestJWTMissingSecretIsServerError(t *testing.T) {
	app := setupApp(t)

	token := signToken(t, "test-secret", jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	// Credential failures must stay distinct from configuration failures
	config.AppConfig.JWTKey = ""

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := setupApp(t)

	admin := models.User{Email: "admin@example.com", Role: models.RoleAdmin}
	admin.ID = 1
	regular := models.User{Email: "user@example.com", Role: models.RoleUser}
	regular.ID = 2

	adminToken, err := middleware.GenerateJWT(admin)
	require.NoError(t, err)
	userToken, err := middleware.GenerateJWT(regular)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
