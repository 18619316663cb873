package repositories

import (
	"fmt"
	"sort"
	"sync"

	"bhansa/internal/apperrors"
	"bhansa/internal/models"

	"github.com/google/uuid"
)

// MockMenuItemRepository is an in-memory implementation of MenuItemRepository.
type MockMenuItemRepository struct {
	items map[string]models.MenuItem
	mu    sync.RWMutex
}

// NewMockMenuItemRepository creates a new instance of MockMenuItemRepository.
func NewMockMenuItemRepository() *MockMenuItemRepository {
	return &MockMenuItemRepository{
		items: make(map[string]models.MenuItem),
	}
}

// GetAll returns all menu items ordered by category.
func (r *MockMenuItemRepository) GetAll() ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		itemList = append(itemList, item)
	}
	sort.Slice(itemList, func(i, j int) bool {
		return itemList[i].Category < itemList[j].Category
	})
	return itemList, nil
}

// GetAvailable returns the items customers can order, ordered by category.
func (r *MockMenuItemRepository) GetAvailable() ([]models.MenuItem, error) {
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}
	available := make([]models.MenuItem, 0, len(all))
	for _, item := range all {
		if item.Available {
			available = append(available, item)
		}
	}
	return available, nil
}

// GetByID returns a menu item by its ID.
func (r *MockMenuItemRepository) GetByID(id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("menu item %s: %w", id, apperrors.ErrNotFound)
	}
	return &item, nil
}

// Create adds a new menu item.
func (r *MockMenuItemRepository) Create(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Update replaces an existing menu item.
func (r *MockMenuItemRepository) Update(item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("menu item %s: %w", item.ID, apperrors.ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes a menu item by its ID.
func (r *MockMenuItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("menu item %s: %w", id, apperrors.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}
