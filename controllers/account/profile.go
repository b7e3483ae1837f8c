package accountControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/auth"
	orderControllers "github.com/Areeb006/FAJR/controllers/order"
	"github.com/Areeb006/FAJR/middleware"
	"github.com/Areeb006/FAJR/models"
)

type UpdateProfileRequest struct {
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Phone              *string `json:"phone"`
	DateOfBirth        *string `json:"date_of_birth"`
	Gender             *string `json:"gender"`
	PreferredFragrance *string `json:"preferred_fragrance"`
}

// GET /api/user
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Public()})
	}
}

// PUT /api/user
//
// Overwrites the mutable profile fields unconditionally: an absent field is
// written as empty, matching the storefront's edit form which always submits
// the full set. Order retention pruning runs afterwards as a best-effort side
// effect and never fails the request.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}

		deref := func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		}
		updates := map[string]interface{}{
			"first_name":          deref(req.FirstName),
			"last_name":           deref(req.LastName),
			"phone":               deref(req.Phone),
			"date_of_birth":       deref(req.DateOfBirth),
			"gender":              deref(req.Gender),
			"preferred_fragrance": deref(req.PreferredFragrance),
		}

		if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		_ = orderControllers.PruneOrders(db, userID, orderControllers.RetentionLimit)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully"})
	}
}

// DeleteUserCascade removes a user together with their orders and addresses
// in a single transaction, so a crash mid-delete cannot leave orphans.
func DeleteUserCascade(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id IN (?)",
			tx.Model(&models.Order{}).Select("id").Where("user_id = ?", userID),
		).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// DELETE /api/user
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := DeleteUserCascade(db, middleware.UserID(c)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		auth.ClearSession(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
	}
}
