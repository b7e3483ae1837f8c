package adminController

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountControllers "github.com/Areeb006/FAJR/controllers/account"
	"github.com/Areeb006/FAJR/models"
)

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		views := make([]models.PublicUser, 0, len(users))
		for _, u := range users {
			views = append(views, u.Public())
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "users": views})
	}
}

// GET /api/admin/users/:id
//
// Full user detail: profile plus addresses, orders, and spend totals.
func GetUserDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		var addresses []models.Address
		db.Where("user_id = ?", user.ID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses)

		var orders []models.Order
		db.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&orders)

		orderViews := make([]gin.H, 0, len(orders))
		var totalSpent float64
		for _, o := range orders {
			totalSpent += o.TotalAmount
			orderViews = append(orderViews, gin.H{
				"id":           o.ID,
				"total_amount": o.TotalAmount,
				"status":       o.Status,
				"created_at":   o.CreatedAt.Format(time.RFC3339),
			})
		}

		addressViews := make([]gin.H, 0, len(addresses))
		for _, a := range addresses {
			addressViews = append(addressViews, adminAddressView(a))
		}

		view := user.Public()
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user": gin.H{
				"id":                  view.ID,
				"first_name":          view.FirstName,
				"last_name":           view.LastName,
				"email":               view.Email,
				"phone":               view.Phone,
				"gender":              view.Gender,
				"date_of_birth":       view.DateOfBirth,
				"preferred_fragrance": view.PreferredFragrance,
				"created_at":          view.CreatedAt,
				"addresses":           addressViews,
				"orders":              orderViews,
				"total_orders":        len(orderViews),
				"total_spent":         totalSpent,
			},
		})
	}
}

func adminAddressView(a models.Address) gin.H {
	return gin.H{
		"id":             a.ID,
		"user_id":        a.UserID,
		"title":          a.Title,
		"name":           a.Name(),
		"street_address": a.StreetAddress,
		"landmark":       a.Landmark,
		"city":           a.City,
		"state":          a.State,
		"postal_code":    a.PostalCode,
		"country":        a.Country,
		"phone":          a.Phone,
		"is_default":     a.IsDefault,
	}
}

// GET /api/admin/users/:id/addresses
func GetUserAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addresses []models.Address
		if err := db.Where("user_id = ?", c.Param("id")).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		views := make([]gin.H, 0, len(addresses))
		for _, a := range addresses {
			views = append(views, adminAddressView(a))
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "addresses": views})
	}
}

// GET /api/admin/users/:id/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Where("user_id = ?", c.Param("id")).
			Order("created_at DESC").
			Limit(10).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		views := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			views = append(views, gin.H{
				"id":           o.ID,
				"user_id":      o.UserID,
				"total_amount": o.TotalAmount,
				"order_status": o.Status,
				"created_at":   o.CreatedAt.Format(time.RFC3339),
			})
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": views})
	}
}

// DELETE /api/admin/users/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}

		if err := accountControllers.DeleteUserCascade(db, user.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
	}
}
