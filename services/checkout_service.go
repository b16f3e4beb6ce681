package services

import (
	"errors"
	"time"

	"github.com/little-lemon/little-lemon-api/apperrors"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService converts a user's cart into an immutable order
type CheckoutService struct {
	db *gorm.DB
}

// NewCheckoutService creates a checkout service backed by db
func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// PlaceOrder turns all of the caller's current cart lines into one order plus
// order-item snapshots, then empties the cart. The whole flow is one
// transaction: the cart lines are locked and read once, the order and its
// items are written from exactly those values, and exactly those line IDs are
// deleted. Any failure rolls the whole thing back, leaving the cart intact
// and no partial order behind.
//
// deliveryCrewID is optional; when present the referenced user must hold the
// Delivery Crew role.
func (s *CheckoutService) PlaceOrder(userID uint, deliveryCrewID *uint) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if deliveryCrewID != nil {
			if err := validateDeliveryCrew(tx, *deliveryCrewID); err != nil {
				return err
			}
		}

		var lines []models.Cart
		if err := lockForUpdate(tx).
			Where("user_id = ?", userID).
			Order("id").
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperrors.Validation("No items in cart to create an order.")
		}

		total := decimal.Zero
		lineIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			total = total.Add(line.Price)
			lineIDs = append(lineIDs, line.ID)
		}

		order = models.Order{
			UserID:         userID,
			DeliveryCrewID: deliveryCrewID,
			Status:         models.OrderStatusPending,
			Date:           time.Now().UTC(),
			Total:          total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Price:      line.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		// Delete only the lines read above so a line added concurrently is
		// neither converted nor orphaned
		return tx.Where("id IN ?", lineIDs).Delete(&models.Cart{}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("DeliveryCrew").
		First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// validateDeliveryCrew checks that the user exists and holds the Delivery
// Crew role
func validateDeliveryCrew(tx *gorm.DB, crewID uint) error {
	var crew models.User
	if err := tx.First(&crew, crewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("Delivery crew user does not exist")
		}
		return err
	}

	var count int64
	if err := tx.Model(&models.UserRole{}).
		Where("user_id = ? AND role_name = ?", crewID, models.RoleDeliveryCrew).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.Validation("User is not a member of the Delivery Crew group")
	}
	return nil
}
