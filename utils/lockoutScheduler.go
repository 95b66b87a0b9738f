package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// releaseExpiredLockouts clears failed-login lockouts whose block window
// has passed so the affected accounts can sign in again.
func releaseExpiredLockouts() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&models.User{}).
		Where("blocked_until IS NOT NULL AND blocked_until <= ?", now).
		Updates(map[string]interface{}{
			"blocked_until":         nil,
			"failed_login_attempts": 0,
			"last_failed_login":     nil,
		})

	if result.Error != nil {
		log.Printf("[LOCKOUT-SCHEDULER] Error releasing lockouts: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[LOCKOUT-SCHEDULER] Released %d expired lockouts", result.RowsAffected)
	}
}

// StartLockoutScheduler runs the lockout release sweep every minute.
func StartLockoutScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1m", releaseExpiredLockouts); err != nil {
		log.Fatalf("Failed to register lockout scheduler: %v", err)
	}

	c.Start()
	log.Println("Lockout scheduler started")
	return c
}
