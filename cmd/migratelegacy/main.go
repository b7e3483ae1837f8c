// Command migratelegacy is a one-time data migration: it bcrypt-hashes every
// account still carrying a plaintext legacy password and clears the legacy
// column. Run it once against a store imported from the old deployment so the
// login-time fallback never has to fire.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/auth"
	"github.com/Areeb006/FAJR/models"
)

func main() {
	_ = godotenv.Load()

	db := openDatabase()

	var users []models.User
	if err := db.Where("(password_hash = '' OR password_hash IS NULL) AND legacy_password != ''").
		Find(&users).Error; err != nil {
		log.Fatalf("failed to list unmigrated users: %v", err)
	}

	if len(users) == 0 {
		log.Println("no legacy passwords left to migrate")
		return
	}

	migrated := 0
	for _, user := range users {
		hashed, err := auth.HashPassword(user.LegacyPassword)
		if err != nil {
			log.Printf("user %d: hashing failed: %v", user.ID, err)
			continue
		}
		if err := db.Model(&user).Updates(map[string]interface{}{
			"password_hash":   hashed,
			"legacy_password": "",
		}).Error; err != nil {
			log.Printf("user %d: update failed: %v", user.ID, err)
			continue
		}
		migrated++
	}

	log.Printf("migrated %d of %d legacy accounts", migrated, len(users))
}

func openDatabase() *gorm.DB {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "fajr.db"
		}
		db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=30000"), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
		)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	return db
}
