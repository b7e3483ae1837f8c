package accountControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/auth"
	"github.com/Areeb006/FAJR/middleware"
	"github.com/Areeb006/FAJR/models"
)

type RegisterRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}
		if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email address is already registered"})
			return
		}
		if req.Phone != "" {
			if err := db.Where("phone = ?", req.Phone).First(&existing).Error; err == nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Phone number is already registered"})
				return
			}
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		user := models.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Phone:        req.Phone,
			Gender:       req.Gender,
			DateOfBirth:  req.DateOfBirth,
			PasswordHash: hashed,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed: " + err.Error()})
			return
		}

		if err := auth.SetSession(c, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Registration successful!",
			"user": gin.H{
				"id":         user.ID,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"email":      user.Email,
			},
		})
	}
}

// POST /api/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}
		if (req.Email == "" && req.Phone == "") || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Provide email or phone, and password"})
			return
		}

		// Email takes precedence when both identifiers are supplied.
		var user models.User
		var err error
		if req.Email != "" {
			err = db.Where("email = ?", req.Email).First(&user).Error
		} else {
			err = db.Where("phone = ?", req.Phone).First(&user).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		ok, err := auth.Authenticate(db, &user, req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		if err := auth.SetSession(c, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful!",
			"user": gin.H{
				"id":         user.ID,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"email":      user.Email,
			},
		})
	}
}

// POST /api/logout
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.ClearSession(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
	}
}

// GET /api/auth/status
func AuthStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(auth.SessionCookie)
		if err != nil || cookie == "" {
			c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": false})
			return
		}
		claims, err := middleware.ParseSession(cookie)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"authenticated": true,
			"user": gin.H{
				"id":    claims["user_id"],
				"email": claims["email"],
				"name":  claims["user_name"],
			},
		})
	}
}
