package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Areeb006/FAJR/middleware"
	"github.com/Areeb006/FAJR/models"
)

// -------- Request Structs --------

type OrderItemRequest struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PlaceOrderRequest accepts both snake_case and the storefront's legacy
// camelCase keys.
type PlaceOrderRequest struct {
	Items            []OrderItemRequest `json:"items"`
	TotalAmount      float64            `json:"total_amount"`
	TotalAmountAlt   float64            `json:"totalAmount"`
	PaymentMethod    string             `json:"payment_method"`
	PaymentMethodAlt string             `json:"paymentMethod"`
	AddressID        *uint              `json:"address_id"`
	AddressIDAlt     *uint              `json:"addressId"`
}

func (r *PlaceOrderRequest) total() float64 {
	if r.TotalAmount != 0 {
		return r.TotalAmount
	}
	return r.TotalAmountAlt
}

func (r *PlaceOrderRequest) paymentMethod() string {
	if r.PaymentMethod != "" {
		return r.PaymentMethod
	}
	return r.PaymentMethodAlt
}

func (r *PlaceOrderRequest) addressID() *uint {
	if r.AddressID != nil {
		return r.AddressID
	}
	return r.AddressIDAlt
}

// generateOrderRef builds a unique, sortable order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// ErrProductNotFound carries the offending product id out of the placement
// transaction.
type ErrProductNotFound struct {
	ProductID uint
}

func (e ErrProductNotFound) Error() string {
	return fmt.Sprintf("Product %d not found", e.ProductID)
}

// -------- Core Logic --------

// PlaceOrder creates one order header with a line item per cart entry, inside
// a single transaction: the first unresolvable product rolls back the whole
// placement.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	order := models.Order{
		OrderRef:      generateOrderRef(),
		UserID:        userID,
		AddressID:     req.addressID(),
		PaymentMethod: req.paymentMethod(),
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.OrderStatusPlaced,
		CreatedAt:     time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound{ProductID: item.ProductID}
				}
				return err
			}

			quantity := item.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			lineTotal := item.Price * float64(quantity)
			total += lineTotal

			order.Items = append(order.Items, models.OrderItem{
				ProductID:    product.ID,
				ProductTitle: product.Title,
				Quantity:     quantity,
				Price:        item.Price,
				LineTotal:    lineTotal,
			})
		}

		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /api/place-order
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request payload"})
			return
		}

		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart items are required"})
			return
		}
		if req.total() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Total amount is required"})
			return
		}
		if req.paymentMethod() == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment method is required"})
			return
		}
		for _, item := range req.Items {
			if item.ProductID == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product ID is required for all items"})
				return
			}
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			var notFound ErrProductNotFound
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFound.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		BroadcastOrderEvent("order_placed", order)

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Order placed successfully!",
			"order_id":  order.ID,
			"order_ref": order.OrderRef,
		})
	}
}

func itemViews(items []models.OrderItem) []gin.H {
	views := make([]gin.H, 0, len(items))
	for _, item := range items {
		views = append(views, gin.H{
			"product_id":    item.ProductID,
			"product_title": item.ProductTitle,
			"product_image": models.ImageURL(item.ProductID),
			"quantity":      item.Quantity,
			"price":         item.Price,
			"line_total":    item.LineTotal,
		})
	}
	return views
}

// GET /api/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Where("user_id = ?", middleware.UserID(c)).
			Preload("Items").
			Order("created_at DESC, id DESC").
			Find(&orders).Error; err != nil {
			// Listing is forgiving: the storefront renders an empty history.
			c.JSON(http.StatusOK, gin.H{"success": true, "orders": []gin.H{}})
			return
		}

		views := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			views = append(views, gin.H{
				"id":             order.ID,
				"order_ref":      order.OrderRef,
				"total_amount":   order.TotalAmount,
				"payment_method": order.PaymentMethod,
				"payment_status": order.PaymentStatus,
				"order_status":   order.Status,
				"created_at":     order.CreatedAt.Format(time.RFC3339),
				"items":          itemViews(order.Items),
			})
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": views})
	}
}

// GET /api/orders/:id
func GetOrderDetailsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		userName := "Unknown User"
		userEmail := ""
		var user models.User
		if err := db.First(&user, order.UserID).Error; err == nil {
			userName = user.FullName()
			userEmail = user.Email
		}

		shippingAddress := "No address provided"
		if order.AddressID != nil {
			var address models.Address
			if err := db.First(&address, *order.AddressID).Error; err == nil {
				shippingAddress = address.OneLine()
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order": gin.H{
				"id":               order.ID,
				"order_ref":        order.OrderRef,
				"user_id":          order.UserID,
				"user_name":        userName,
				"user_email":       userEmail,
				"total_amount":     order.TotalAmount,
				"payment_method":   order.PaymentMethod,
				"payment_status":   order.PaymentStatus,
				"status":           order.Status,
				"shipping_address": shippingAddress,
				"created_at":       order.CreatedAt.Format(time.RFC3339),
				"items":            itemViews(order.Items),
			},
		})
	}
}
