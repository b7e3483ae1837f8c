package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey gates the admin group behind the X-API-KEY header when
// ADMIN_API_KEY is configured. With no key configured the group stays open,
// matching the legacy deployment where admin access was gated upstream; main
// logs a warning in that case.
func ValidateAPIKey(c *gin.Context) {
	expected := os.Getenv("ADMIN_API_KEY")
	if expected == "" {
		c.Next()
		return
	}
	if c.GetHeader("X-API-KEY") != expected {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or missing API key"})
		c.Abort()
		return
	}
	c.Next()
}
