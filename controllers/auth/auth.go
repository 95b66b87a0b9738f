package authController

import (
	"errors"
	"log"
	"strings"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins  = 5
	lockoutDuration  = 15 * time.Minute
	failedLoginReset = 15 * time.Minute
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.Error(c, fiber.StatusConflict, "Email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error creating user")
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
		Status:   models.StatusActive,
	}

	if err := db.Create(&newUser).Error; err != nil {
		// A racing registration can slip past the check above and hit
		// the unique constraint instead
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.Error(c, fiber.StatusConflict, "Email already exists")
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error creating user")
	}

	token, err := middleware.GenerateJWT(newUser)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error creating user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
	})
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	db := database.Database.Db

	// The unknown-email and wrong-password paths must be
	// indistinguishable to the caller.
	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	// Stale failure counters reset before they can contribute to a lockout
	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > failedLoginReset {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		db.Save(&user)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastFailedLogin = &now

		if user.FailedLoginAttempts >= maxFailedLogins {
			lockedUntil := now.Add(lockoutDuration)
			user.BlockedUntil = &lockedUntil
		}

		if err := db.Save(&user).Error; err != nil {
			log.Printf("Error recording failed login: %v", err)
		}

		return middleware.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if user.BlockedUntil != nil && user.BlockedUntil.After(time.Now()) {
		return middleware.Error(c, fiber.StatusUnauthorized, "Account is temporarily locked. Try again later.")
	}

	if user.Status == models.StatusBlocked {
		return middleware.Error(c, fiber.StatusUnauthorized, "Account is blocked")
	}

	if user.FailedLoginAttempts > 0 {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
		user.BlockedUntil = nil
		db.Save(&user)
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error during login")
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

// Verify returns fresh user data for a valid bearer token.
func Verify(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.Error(c, fiber.StatusUnauthorized, "Authentication token is required")
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.Error(c, fiber.StatusNotFound, "User not found")
	}

	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")

	return c.JSON(fiber.Map{
		"user":  user.Public(),
		"token": token,
	})
}

// AdminLogin authenticates admin users only.
func AdminLogin(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.Error(c, fiber.StatusBadRequest, "Invalid request data")
	}

	var user models.User
	if err := database.Database.Db.
		Where("email = ? AND role = ?", reqData.Email, models.RoleAdmin).
		First(&user).Error; err != nil {
		return middleware.Error(c, fiber.StatusUnauthorized, "Invalid credentials or not an admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.Error(c, fiber.StatusInternalServerError, "Error during login")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}
