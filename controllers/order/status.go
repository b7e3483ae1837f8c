package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/orders/:id/status
//
// Any of the six statuses may replace any other; there is no transition
// graph. An invalid status leaves the order untouched.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !models.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order status"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		if err := db.Model(&order).Update("status", models.OrderStatus(req.Status)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		order.Status = models.OrderStatus(req.Status)
		BroadcastOrderEvent("status_updated", &order)

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully"})
	}
}

// DELETE /api/admin/orders/:id
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
	}
}
