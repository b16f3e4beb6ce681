package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPending        = "pending"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
)

// ValidOrderStatus reports whether s is one of the known order statuses
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusOutForDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

// Order is an immutable snapshot of a user's cart at checkout time.
// Total is computed once from the consumed cart lines and never recomputed.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID" json:"-"`
	DeliveryCrewID *uint           `gorm:"index" json:"delivery_crew_id"` // nullable, must hold the Delivery Crew role
	DeliveryCrew   *User           `gorm:"foreignKey:DeliveryCrewID" json:"delivery_crew,omitempty"`
	Status         string          `gorm:"not null;default:'pending'" json:"status"` // pending, out_for_delivery, delivered
	Date           time.Time       `gorm:"not null" json:"date"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order with quantity and prices frozen at
// checkout time. Later menu price changes never touch existing order items.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	MenuItemID uint            `gorm:"not null" json:"menuitem_id"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID" json:"menuitem"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
