package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
)

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		views := make([]models.PublicProduct, 0, len(products))
		for _, p := range products {
			views = append(views, p.Public())
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": views})
	}
}
