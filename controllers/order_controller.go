package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/apperrors"
	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
	"github.com/little-lemon/little-lemon-api/utils"
	"gorm.io/gorm"
)

// CreateOrderRequest represents the optional request body for checkout.
// A manager may assign a delivery crew member at creation time.
type CreateOrderRequest struct {
	DeliveryCrewID *uint `json:"delivery_crew_id"`
}

// UpdateOrderRequest represents the request body for PATCH /orders/:id.
type UpdateOrderRequest struct {
	Status         *string `json:"status"`
	DeliveryCrewID *uint   `json:"delivery_crew_id"`
}

// CreateOrder handles POST /api/v1/orders - converts the caller's cart into an order
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid request data",
					"details": err.Error(),
				},
			})
			return
		}
	}

	db := config.GetDB()

	// Only managers may pre-assign a delivery crew member.
	if req.DeliveryCrewID != nil && !middleware.IsManager(db, user).Allowed {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": middleware.DeniedMessage,
			},
		})
		return
	}

	checkout := services.NewCheckoutService(db)
	order, err := checkout.PlaceOrder(user.ID, req.DeliveryCrewID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - scope depends on the caller's role:
// managers see every order, delivery crew see their assignments, customers
// see their own.
func ListOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	page := utils.ParsePageParams(c)

	query := db.Model(&models.Order{}).
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("DeliveryCrew")

	switch {
	case middleware.IsManager(db, user).Allowed:
		// no scoping
	case middleware.IsDeliveryCrew(db, user).Allowed:
		query = query.Where("delivery_crew_id = ?", user.ID)
	default:
		query = query.Where("user_id = ?", user.ID)
	}

	if status := c.Query("status"); status != "" {
		if !models.ValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid order status filter",
				},
			})
			return
		}
		query = query.Where("status = ?", status)
	}

	switch ordering := c.Query("ordering"); ordering {
	case "date":
		query = query.Order("date asc")
	case "-date":
		query = query.Order("date desc")
	case "total":
		query = query.Order("total asc")
	case "-total":
		query = query.Order("total desc")
	default:
		query = query.Order("id desc")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	if err := query.Scopes(page.Scope()).Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
		"page": gin.H{
			"page":      page.Page,
			"page_size": page.PageSize,
			"total":     total,
		},
	})
}

// GetOrder handles GET /api/v1/orders/:id - the owner, an assigned crew
// member, or a manager may view an order.
func GetOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()

	var order models.Order
	err := db.Preload("Items").
		Preload("Items.MenuItem").
		Preload("DeliveryCrew").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	if !canViewOrder(db, user, &order) {
		apperrors.Respond(c, apperrors.Forbidden(middleware.DeniedMessage))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:id - managers may set the status
// and the delivery crew assignment; delivery crew may set the status of
// orders assigned to them.
func UpdateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	isManager := middleware.IsManager(db, user).Allowed
	isAssignedCrew := middleware.IsDeliveryCrew(db, user).Allowed &&
		order.DeliveryCrewID != nil && *order.DeliveryCrewID == user.ID

	if !isManager && !isAssignedCrew {
		apperrors.Respond(c, apperrors.Forbidden(middleware.DeniedMessage))
		return
	}

	updates := map[string]interface{}{}

	if req.Status != nil {
		if !models.ValidOrderStatus(*req.Status) {
			apperrors.Respond(c, apperrors.Validation("Invalid order status"))
			return
		}
		updates["status"] = *req.Status
	}

	if req.DeliveryCrewID != nil {
		if !isManager {
			apperrors.Respond(c, apperrors.Forbidden(middleware.DeniedMessage))
			return
		}
		var crew models.User
		if err := db.First(&crew, *req.DeliveryCrewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperrors.Respond(c, apperrors.Validation("Delivery crew user does not exist"))
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load user",
				},
			})
			return
		}
		if !middleware.HasRole(db, crew.ID, models.RoleDeliveryCrew) {
			apperrors.Respond(c, apperrors.Validation("User is not a delivery crew member"))
			return
		}
		updates["delivery_crew_id"] = *req.DeliveryCrewID
	}

	if len(updates) == 0 {
		apperrors.Respond(c, apperrors.Validation("No fields to update"))
		return
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if err := db.Preload("Items").
		Preload("Items.MenuItem").
		Preload("DeliveryCrew").
		First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to reload order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - manager only (enforced by routing)
func DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("Order not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	if err := db.Delete(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Order deleted successfully",
		},
	})
}

func canViewOrder(db *gorm.DB, user *models.User, order *models.Order) bool {
	if order.UserID == user.ID {
		return true
	}
	if middleware.IsManager(db, user).Allowed {
		return true
	}
	if middleware.IsDeliveryCrew(db, user).Allowed &&
		order.DeliveryCrewID != nil && *order.DeliveryCrewID == user.ID {
		return true
	}
	return false
}
