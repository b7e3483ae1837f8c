package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountControllers "github.com/Areeb006/FAJR/controllers/account"
	addressControllers "github.com/Areeb006/FAJR/controllers/address"
	orderControllers "github.com/Areeb006/FAJR/controllers/order"
	"github.com/Areeb006/FAJR/middleware"
)

// SetupAccountRoutes registers all session-protected endpoints.
func SetupAccountRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	api.Use(middleware.RequireSession)
	{
		// ─────────── Profile ───────────
		api.GET("/user", accountControllers.GetUser(db))
		api.PUT("/user", accountControllers.UpdateUser(db))
		api.DELETE("/user", accountControllers.DeleteUser(db))
		api.GET("/user/profile", accountControllers.GetUser(db)) // legacy client alias

		// ─────────── Address Book ───────────
		api.GET("/addresses", addressControllers.GetAddresses(db))
		api.POST("/addresses", addressControllers.AddAddress(db))
		api.GET("/addresses/:id", addressControllers.GetAddress(db))
		api.PUT("/addresses/:id", addressControllers.UpdateAddress(db))
		api.DELETE("/addresses/:id", addressControllers.DeleteAddress(db))

		// ─────────── Orders ───────────
		api.POST("/place-order", orderControllers.PlaceOrderHandler(db))
		api.GET("/orders", orderControllers.GetUserOrdersHandler(db))
	}
}
