package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/apperrors"
	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
	"github.com/little-lemon/little-lemon-api/services"
	"github.com/little-lemon/little-lemon-api/utils"
	"gorm.io/gorm"
)

// UploadMenuItemImage handles POST /api/v1/menu-items/:id/image - manager only.
// Expects a multipart form with the photo under the "image" field. Replacing
// an existing photo deletes the old object from storage.
func UploadMenuItemImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	db := config.GetDB()

	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("Menu item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load menu item",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Image file is required under the 'image' field"))
		return
	}

	s3Key, err := imageService.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			apperrors.Respond(c, apperrors.Validation(uploadErr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	oldKey := ""
	if item.ImageS3Key != nil {
		oldKey = *item.ImageS3Key
	}

	if err := db.Model(&item).Update("image_s3_key", s3Key).Error; err != nil {
		// Keep storage consistent with the database on failure.
		_ = imageService.DeleteImage(s3Key)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save image reference",
			},
		})
		return
	}

	if oldKey != "" && oldKey != s3Key {
		if err := imageService.DeleteImage(oldKey); err != nil {
			config.GetLogger().Warn("failed to delete replaced menu item image")
		}
	}

	attachImageURL(&item)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItemImage handles DELETE /api/v1/menu-items/:id/image - manager only
func DeleteMenuItemImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()

	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("Menu item not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load menu item",
			},
		})
		return
	}

	if item.ImageS3Key == nil || *item.ImageS3Key == "" {
		apperrors.Respond(c, apperrors.NotFound("Menu item has no image"))
		return
	}

	key := *item.ImageS3Key

	if err := db.Model(&item).Update("image_s3_key", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to remove image reference",
			},
		})
		return
	}

	if imageService := services.GetImageService(); imageService != nil {
		if err := imageService.DeleteImage(key); err != nil {
			config.GetLogger().Warn("failed to delete menu item image from storage")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Image deleted successfully",
		},
	})
}
