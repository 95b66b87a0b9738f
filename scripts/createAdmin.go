package main

import (
	"flag"
	"log"

	"lms/config"
	"lms/database"
	"lms/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds an admin account. Usage:
//
//	go run ./scripts -name "Admin" -email admin@example.com -password secret
func main() {
	name := flag.String("name", "Admin", "admin display name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Both -email and -password are required")
	}

	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	var existing models.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		log.Fatalf("A user with email %s already exists", *email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Error hashing password: %v", err)
	}

	admin := models.User{
		Name:     *name,
		Email:    *email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}

	log.Printf("Admin created with email %s", *email)
}
