package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is the aggregate: one header per checkout, one OrderItem per cart
// line. Items are deleted with their header.
type Order struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef      string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	AddressID     *uint         `json:"address_id"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"order_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

type OrderItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID      uint    `gorm:"index" json:"order_id"`
	ProductID    uint    `json:"product_id"`
	ProductTitle string  `json:"product_title"`
	Quantity     int     `gorm:"default:1" json:"quantity"`
	Price        float64 `json:"price"`
	LineTotal    float64 `json:"line_total"`
}

// ValidOrderStatus reports whether s is one of the six order states. Any
// valid status may replace any other; there is no transition graph.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPlaced, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
