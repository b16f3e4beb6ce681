package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/middleware"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
	"gorm.io/gorm"
)

// currentUser resolves the authenticated caller's profile, writing the error
// response itself when that fails. The second return reports success.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, err := middleware.CurrentUser(c)
	if err == nil {
		return user, true
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Could not extract user information",
		},
	})
	return nil, false
}

// pathID parses a numeric :id-style path parameter
func pathID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid " + param + " parameter",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// isDuplicateKeyErr reports whether err is a unique-constraint violation
// (works with both PostgreSQL and SQLite)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// attachImageURL fills in the presigned photo URL for a menu item, if it has
// a photo and the image service is configured
func attachImageURL(item *models.MenuItem) {
	if item.ImageS3Key == nil || *item.ImageS3Key == "" {
		return
	}
	svc := services.GetImageService()
	if svc == nil {
		return
	}
	if url, err := svc.GetImageURL(*item.ImageS3Key); err == nil && url != "" {
		item.ImageURL = &url
	}
}
