package services

import (
	"errors"

	"github.com/little-lemon/little-lemon-api/apperrors"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartService owns every mutation of a user's cart lines
type CartService struct {
	db *gorm.DB
}

// NewCartService creates a cart service backed by db
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// lockForUpdate adds a row lock to the query where the dialect supports one.
// sqlite has no row locks; its single-writer model already serializes the
// transaction.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// AddItem adds quantity of a menu item to the user's cart. If the user
// already has a line for that item, the quantity is incremented and the line
// total recomputed; the unit price stays frozen at its first-add snapshot.
// The whole read-modify-write runs in one transaction with the existing line
// locked, so concurrent adds of the same (user, item) pair never lose an
// increment.
func (s *CartService) AddItem(userID, menuItemID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apperrors.Validation("Quantity must be at least 1")
	}

	var lineID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, menuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("Menu item does not exist")
			}
			return err
		}

		var line models.Cart
		err := lockForUpdate(tx).
			Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
			First(&line).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.Cart{
				UserID:     userID,
				MenuItemID: menuItemID,
				Quantity:   quantity,
				UnitPrice:  item.Price,
				Price:      item.Price.Mul(decimal.NewFromInt(int64(quantity))),
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			line.Quantity += quantity
			line.Price = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			if err := tx.Save(&line).Error; err != nil {
				return err
			}
		}

		lineID = line.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	var line models.Cart
	if err := s.db.Preload("MenuItem").Preload("MenuItem.Category").First(&line, lineID).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// Items returns the user's current cart lines with their menu items
func (s *CartService) Items(userID uint) ([]models.Cart, error) {
	var lines []models.Cart
	err := s.db.Preload("MenuItem").Preload("MenuItem.Category").
		Where("user_id = ?", userID).
		Order("id").
		Find(&lines).Error
	return lines, err
}

// Clear deletes every cart line for the user. Clearing an empty cart is a
// no-op success.
func (s *CartService) Clear(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.Cart{}).Error
}
