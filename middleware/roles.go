package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/little-lemon/little-lemon-api/config"
	"github.com/little-lemon/little-lemon-api/models"
	"gorm.io/gorm"
)

// DeniedMessage is the reason attached to every role-gate denial
const DeniedMessage = "You do not have permission to perform this action"

// Decision is the outcome of a role-gate check. The gate always answers with
// an explicit allow/deny value; it never panics or signals through side
// channels.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow returns a permitting decision
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// HasRole reports whether the user holds a membership in the named role
func HasRole(db *gorm.DB, userID uint, roleName string) bool {
	var count int64
	db.Model(&models.UserRole{}).
		Where("user_id = ? AND role_name = ?", userID, roleName).
		Count(&count)
	return count > 0
}

// IsManager checks membership in the Manager role
func IsManager(db *gorm.DB, user *models.User) Decision {
	if user != nil && HasRole(db, user.ID, models.RoleManager) {
		return Allow()
	}
	return Deny(DeniedMessage)
}

// IsDeliveryCrew checks membership in the Delivery Crew role
func IsDeliveryCrew(db *gorm.DB, user *models.User) Decision {
	if user != nil && HasRole(db, user.ID, models.RoleDeliveryCrew) {
		return Allow()
	}
	return Deny(DeniedMessage)
}

// IsAuthenticatedCustomer checks that a caller identity is present at all.
// Any authenticated user is at least a customer.
func IsAuthenticatedCustomer(user *models.User) Decision {
	if user != nil {
		return Allow()
	}
	return Deny(DeniedMessage)
}

// CurrentUser resolves the local user record for the authenticated caller.
// The lookup result is cached on the context for the rest of the request.
func CurrentUser(c *gin.Context) (*models.User, error) {
	if cached, exists := c.Get("current_user"); exists {
		if user, ok := cached.(*models.User); ok {
			return user, nil
		}
	}

	auth0ID, err := GetUserID(c)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		return nil, err
	}

	c.Set("current_user", &user)
	return &user, nil
}

// RequireRole gates a route on a role membership. The caller must be
// authenticated, have a local profile, and hold the named role; otherwise the
// request is rejected with a single 403 response.
func RequireRole(roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Could not resolve user for this request",
				},
			})
			c.Abort()
			return
		}

		decision := Deny(DeniedMessage)
		switch roleName {
		case models.RoleManager:
			decision = IsManager(config.GetDB(), user)
		case models.RoleDeliveryCrew:
			decision = IsDeliveryCrew(config.GetDB(), user)
		}

		if !decision.Allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": decision.Reason,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
