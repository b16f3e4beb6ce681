package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/apperrors"
	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
	"gorm.io/gorm"
)

// GroupMemberRequest carries the target user's numeric id under the
// "username" key, matching the form-style contract of the original API.
type GroupMemberRequest struct {
	Username *uint `json:"username"`
}

// roleFromParam maps a URL group segment to the stored role name.
func roleFromParam(group string) (string, bool) {
	switch group {
	case "manager":
		return models.RoleManager, true
	case "delivery-crew", "delivery_crew":
		return models.RoleDeliveryCrew, true
	default:
		return "", false
	}
}

// ListGroupMembers handles GET /api/v1/groups/:group/users - manager only
func ListGroupMembers(c *gin.Context) {
	role, ok := roleFromParam(c.Param("group"))
	if !ok {
		apperrors.Respond(c, apperrors.NotFound(fmt.Sprintf("%s group does not exist!", c.Param("group"))))
		return
	}

	db := config.GetDB()

	var users []models.User
	err := db.Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role_name = ?", role).
		Find(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load group members",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

// AssignGroupMember handles POST /api/v1/groups/:group/users - manager only.
// Assigning a user already in the group succeeds without duplicating the role.
func AssignGroupMember(c *gin.Context) {
	role, ok := roleFromParam(c.Param("group"))
	if !ok {
		apperrors.Respond(c, apperrors.NotFound(fmt.Sprintf("%s group does not exist!", c.Param("group"))))
		return
	}

	var req GroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == nil {
		apperrors.Respond(c, apperrors.Validation("Invalid data!"))
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.First(&user, *req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("User not found!"))
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

	membership := models.UserRole{UserID: user.ID, RoleName: role}
	err := db.Where(&membership).FirstOrCreate(&membership).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to assign role",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"message": fmt.Sprintf("%s has been assigned as %s", user.Username, role),
		},
	})
}

// RemoveGroupMember handles DELETE /api/v1/groups/:group/users/:id - manager only
func RemoveGroupMember(c *gin.Context) {
	role, ok := roleFromParam(c.Param("group"))
	if !ok {
		apperrors.Respond(c, apperrors.NotFound(fmt.Sprintf("%s group does not exist!", c.Param("group"))))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid user ID"))
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.NotFound("User not found!"))
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

	result := db.Where("user_id = ? AND role_name = ?", user.ID, role).
		Delete(&models.UserRole{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to remove role",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		apperrors.Respond(c, apperrors.NotFound(fmt.Sprintf("This user is not in the %s group", role)))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": fmt.Sprintf("%s has been removed from the %s group", user.Username, role),
		},
	})
}
