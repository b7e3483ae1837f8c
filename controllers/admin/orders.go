package adminController

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/models"
)

// GET /api/admin/orders
//
// All orders with user details, newest first. Forgiving on failure: the
// dashboard renders an empty table rather than an error page.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to fetch orders", "orders": []gin.H{}})
			return
		}

		// One pass over users instead of a query per order.
		userIDs := make([]uint, 0, len(orders))
		for _, o := range orders {
			userIDs = append(userIDs, o.UserID)
		}
		var users []models.User
		db.Where("id IN ?", userIDs).Find(&users)
		usersByID := make(map[uint]models.User, len(users))
		for _, u := range users {
			usersByID[u.ID] = u
		}

		views := make([]gin.H, 0, len(orders))
		for _, o := range orders {
			userName := "Unknown User"
			userEmail := ""
			if u, ok := usersByID[o.UserID]; ok {
				userName = u.FullName()
				userEmail = u.Email
			}

			items := make([]gin.H, 0, len(o.Items))
			for _, item := range o.Items {
				items = append(items, gin.H{
					"product_title": item.ProductTitle,
					"product_image": models.ImageURL(item.ProductID),
					"quantity":      item.Quantity,
				})
			}

			views = append(views, gin.H{
				"id":             o.ID,
				"order_ref":      o.OrderRef,
				"user_name":      userName,
				"user_email":     userEmail,
				"total_amount":   o.TotalAmount,
				"payment_method": o.PaymentMethod,
				"payment_status": o.PaymentStatus,
				"order_status":   o.Status,
				"created_at":     o.CreatedAt.Format(time.RFC3339),
				"items":          items,
			})
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": views})
	}
}

// GET /api/admin/export/orders
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "OrderRef", "UserID", "TotalAmount", "PaymentMethod",
			"PaymentStatus", "Status", "Items", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to write Excel file"})
			return
		}
	}
}
