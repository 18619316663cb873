package models

import "gorm.io/gorm"

// MenuItem represents a dish on the restaurant menu. Category is stored
// normalized (see NormalizeCategory) so grouping is consistent across the
// customer menu and the admin dashboard.
type MenuItem struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,max=100"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Available   bool    `json:"available"`
	gorm.Model  `json:"-"` // CreatedAt, UpdatedAt, DeletedAt
}
