package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/apperrors"
	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/services"
)

// AddToCartRequest represents the request body for adding a menu item to the
// cart. Quantity defaults to 1 when omitted.
type AddToCartRequest struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   *int `json:"quantity"`
}

// GetCart handles GET /api/v1/cart/menu-items - lists the caller's cart lines
func GetCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	carts := services.NewCartService(config.GetDB())
	lines, err := carts.Items(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load cart",
			},
		})
		return
	}

	for i := range lines {
		attachImageURL(&lines[i].MenuItem)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    lines,
	})
}

// AddToCart handles POST /api/v1/cart/menu-items - adds or increments a line
func AddToCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddToCartRequest
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

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	carts := services.NewCartService(config.GetDB())
	line, err := carts.AddItem(user.ID, req.MenuItemID, quantity)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	attachImageURL(&line.MenuItem)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    line,
	})
}

// ClearCart handles DELETE /api/v1/cart/menu-items - removes every line.
// Clearing an empty cart succeeds the same way.
func ClearCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	carts := services.NewCartService(config.GetDB())
	if err := carts.Clear(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to clear cart",
			},
		})
		return
	}

	c.Status(http.StatusNoContent)
}
