package repositories

import "bhansa/internal/models"

// MenuItemRepository defines the interface for menu item data access.
type MenuItemRepository interface {
	GetAll() ([]models.MenuItem, error)
	GetAvailable() ([]models.MenuItem, error)
	GetByID(id string) (*models.MenuItem, error)
	Create(item *models.MenuItem) error
	Update(item *models.MenuItem) error
	Delete(id string) error
}
