package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is one pending line in a user's cart: a menu item with a quantity and
// the unit price captured when the line was first added. A user has at most
// one line per menu item; re-adds increment the quantity instead.
//
// Cart rows are deleted outright on clear and checkout, so no soft delete:
// a soft-deleted row would keep blocking the (user_id, menu_item_id) index.
type Cart struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"user_id"`
	User       User            `gorm:"foreignKey:UserID" json:"-"`
	MenuItemID uint            `gorm:"not null;uniqueIndex:idx_cart_user_item" json:"menuitem_id"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID" json:"menuitem"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"` // Quantity x UnitPrice
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Cart model
func (Cart) TableName() string {
	return "carts"
}
