package models

import (
	"time"

	"gorm.io/gorm"
)

// Role names. A user holding neither role is a plain customer.
const (
	RoleManager      = "Manager"
	RoleDeliveryCrew = "Delivery Crew"
)

// User represents a user in the system, keyed by the Auth0 identity
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// UserRole is one role membership. The (user_id, role_name) pair is unique,
// which is what makes role assignment idempotent at the store level.
type UserRole struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_role" json:"user_id"`
	RoleName string `gorm:"not null;uniqueIndex:idx_user_role" json:"role_name"`
}

// TableName specifies the table name for the UserRole model
func (UserRole) TableName() string {
	return "user_roles"
}
