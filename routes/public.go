package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	accountControllers "github.com/Areeb006/FAJR/controllers/account"
	orderControllers "github.com/Areeb006/FAJR/controllers/order"
	productcontroller "github.com/Areeb006/FAJR/controllers/product"
)

// SetupPublicRoutes registers the endpoints that need no session.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		// ─────────── Authentication ───────────
		api.POST("/register", accountControllers.Register(db))
		api.POST("/login", accountControllers.Login(db))
		api.POST("/logout", accountControllers.Logout())
		api.GET("/auth/status", accountControllers.AuthStatus())
		api.GET("/check-auth", accountControllers.AuthStatus()) // legacy client alias

		// ─────────── Catalog ───────────
		api.GET("/products", productcontroller.GetProducts(db))
		api.GET("/products/:id", productcontroller.GetProductByID(db))
		api.GET("/product-image/:id", productcontroller.GetProductImage(db))

		// Order detail view is shared with the admin dashboard
		api.GET("/orders/:id", orderControllers.GetOrderDetailsHandler(db))
	}
}
