package adminController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
)

// GET /api/admin/stats
//
// Dashboard aggregates: entity counts, delivered revenue (lifetime and the
// current calendar month), and the five most recent products and users.
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalProducts, totalUsers, totalOrders int64
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		var totalRevenue, monthlyRevenue float64
		db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusDelivered).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalRevenue)

		now := time.Now()
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		db.Model(&models.Order{}).
			Where("status = ? AND created_at >= ?", models.OrderStatusDelivered, firstOfMonth).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&monthlyRevenue)

		var recentProducts []models.Product
		db.Order("created_at DESC").Limit(5).Find(&recentProducts)
		recentProductViews := make([]gin.H, 0, len(recentProducts))
		for _, p := range recentProducts {
			recentProductViews = append(recentProductViews, gin.H{
				"id":        p.ID,
				"title":     p.Title,
				"price":     p.Price,
				"image_url": models.ImageURL(p.ID),
			})
		}

		var recentUsers []models.User
		db.Order("created_at DESC").Limit(5).Find(&recentUsers)
		recentUserViews := make([]gin.H, 0, len(recentUsers))
		for _, u := range recentUsers {
			recentUserViews = append(recentUserViews, gin.H{
				"id":    u.ID,
				"name":  u.FullName(),
				"email": u.Email,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"stats": gin.H{
				"total_products":  totalProducts,
				"total_users":     totalUsers,
				"total_orders":    totalOrders,
				"total_revenue":   totalRevenue,
				"monthly_revenue": monthlyRevenue,
				"recent_products": recentProductViews,
				"recent_users":    recentUserViews,
			},
		})
	}
}
