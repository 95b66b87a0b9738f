package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lms/config"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT issues a signed token embedding the user's identity and role.
// Tokens expire after 24 hours; there is no refresh mechanism.
func GenerateJWT(user models.User) (string, error) {
	if config.AppConfig == nil || config.AppConfig.JWTKey == "" {
		return "", errors.New("jwt secret is not configured")
	}

	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTKey))
}

// JWTMiddleware checks for a valid bearer token and attaches the decoded
// identity to the request context.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return Error(c, fiber.StatusUnauthorized, "Invalid Authorization header format")
	}
	tokenString := authHeader[len("Bearer "):]

	// An empty secret is a server misconfiguration. Keep it distinct from
	// credential failures so config bugs don't surface as user errors.
	if config.AppConfig == nil || config.AppConfig.JWTKey == "" {
		return Error(c, fiber.StatusInternalServerError, "Internal server error during authentication")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Error(c, fiber.StatusUnauthorized, "Token has expired")
		}
		return Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Error(c, fiber.StatusUnauthorized, "Invalid token")
	}

	// JWT number claims decode as float64
	userID, ok := claims["id"].(float64)
	if !ok {
		return Error(c, fiber.StatusUnauthorized, "Invalid token")
	}
	c.Locals("userId", uint(userID))
	if email, ok := claims["email"].(string); ok {
		c.Locals("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}

	return c.Next()
}

// Error writes the uniform error body used across the API.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"message": message,
	})
}

// ValidationErrorResponse reports per-field validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errors,
	})
}
