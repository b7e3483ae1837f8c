package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/Areeb006/FAJR/controllers/admin"
	orderControllers "github.com/Areeb006/FAJR/controllers/order"
	productcontroller "github.com/Areeb006/FAJR/controllers/product"
	"github.com/Areeb006/FAJR/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Dashboard ───────────
		adminGroup.GET("/stats", adminController.GetStats(db))

		// ─────────── Product Management ───────────
		adminGroup.POST("/products", productcontroller.CreateProduct(db))
		adminGroup.PUT("/products/:id", productcontroller.UpdateProduct(db))
		adminGroup.POST("/upload-product-image/:id", productcontroller.UploadProductImage(db))

		// ─────────── User Management ───────────
		adminGroup.GET("/users", adminController.GetAllUsers(db))
		adminGroup.GET("/users/:id", adminController.GetUserDetails(db))
		adminGroup.GET("/users/:id/addresses", adminController.GetUserAddresses(db))
		adminGroup.GET("/users/:id/orders", adminController.GetUserOrders(db))
		adminGroup.DELETE("/users/:id", adminController.DeleteUser(db))

		// ─────────── Order Management ───────────
		adminGroup.GET("/orders", adminController.GetAllOrders(db))
		adminGroup.PUT("/orders/:id/status", orderControllers.UpdateOrderStatusHandler(db))
		adminGroup.DELETE("/orders/:id", orderControllers.DeleteOrderHandler(db))

		// websocket endpoint for real-time order updates
		adminGroup.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

		// ─────────── Exports ───────────
		adminGroup.GET("/export/products", productcontroller.ExportProductsToExcel(db))
		adminGroup.GET("/export/orders", adminController.ExportOrdersToExcel(db))
	}
}
