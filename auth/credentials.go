package auth

import (
	"github.com/Areeb006/FAJR/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// HashPassword produces a salted bcrypt digest for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies an attempt against a stored bcrypt digest.
func CheckPassword(hash, attempt string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)) == nil
}

// MigrateIfLegacy upgrades an account that predates hashed credentials.
// If no digest is stored but the legacy plaintext column matches the attempt,
// it persists a bcrypt hash, clears the legacy column, and reports the user
// authenticated. Runs at most once per account: after a successful migration
// the digest path takes over.
func MigrateIfLegacy(db *gorm.DB, user *models.User, attempt string) (bool, error) {
	if user.PasswordHash != "" {
		return false, nil
	}
	if user.LegacyPassword == "" || user.LegacyPassword != attempt {
		return false, nil
	}

	hashed, err := HashPassword(attempt)
	if err != nil {
		return false, err
	}
	if err := db.Model(user).Updates(map[string]interface{}{
		"password_hash":   hashed,
		"legacy_password": "",
	}).Error; err != nil {
		return false, err
	}
	user.PasswordHash = hashed
	user.LegacyPassword = ""
	return true, nil
}

// Authenticate checks the attempt against the stored digest, falling back to
// the one-time legacy migration for unmigrated accounts.
func Authenticate(db *gorm.DB, user *models.User, attempt string) (bool, error) {
	if user.PasswordHash != "" {
		return CheckPassword(user.PasswordHash, attempt), nil
	}
	return MigrateIfLegacy(db, user, attempt)
}
