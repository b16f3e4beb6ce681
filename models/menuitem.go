package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem represents a dish on the menu
type MenuItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Title      string          `gorm:"not null" json:"title"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Featured   bool            `gorm:"not null;default:false" json:"featured"`
	CategoryID uint            `gorm:"not null;index" json:"category_id"`
	Category   Category        `gorm:"foreignKey:CategoryID" json:"category"`
	ImageS3Key *string         `json:"image_s3_key,omitempty"`           // nullable, S3 key for the dish photo
	ImageURL   *string         `gorm:"-" json:"image_url,omitempty"`     // computed field, presigned URL for the photo
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
