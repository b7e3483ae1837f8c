package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, account,
// and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public routes (no middleware)
	SetupPublicRoutes(r, db)

	// Account routes (session-protected)
	SetupAccountRoutes(r, db)

	// Admin routes (API-key-protected when a key is configured)
	SetupAdminRoutes(r, db)
}
