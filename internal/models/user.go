package models

import "gorm.io/gorm"

// Roles a user account can hold. Only admins may manage the menu and
// drive the order workflow.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a staff account. Customers never authenticate.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash
	Role       string `json:"role" gorm:"type:varchar(20);default:staff" validate:"omitempty,oneof=admin staff"`
	gorm.Model `json:"-"` // CreatedAt, UpdatedAt, DeletedAt
}
