package main

import (
	"fmt"
	"log"
	"restaurant_pos/internal/config"
	"restaurant_pos/internal/database"
	"restaurant_pos/internal/models"
)

func main() {
	fmt.Println("Seeding database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create default establishment if none exists
	var est models.Establishment
	if err := db.Order("id").First(&est).Error; err != nil {
		est = models.Establishment{
			Name:          "demo",
			ServiceCharge: 10,
		}
		if err := db.Create(&est).Error; err != nil {
			log.Fatal("Failed to create establishment:", err)
		}
		fmt.Printf("Created establishment %q (id %d)\n", est.Name, est.ID)
	}

	// Create admin user if none exists
	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err == nil {
		fmt.Println("Admin user already exists, nothing to do")
		return
	}

	admin = models.User{
		Name:            "Administrator",
		Username:        "admin",
		Role:            models.RoleAdmin,
		EstablishmentID: &est.ID,
	}
	if err := admin.HashPassword("admin123"); err != nil {
		log.Fatal("Failed to hash password:", err)
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Println("Created admin user 'admin' (change the default password)")
}
