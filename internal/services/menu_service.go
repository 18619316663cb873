package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"bhansa/internal/apperrors"
	"bhansa/internal/models"
	"bhansa/internal/repositories"
	"bhansa/pkg/cache"
)

// itemOfTheDayTTL bounds how stale the cached aggregation may get.
const itemOfTheDayTTL = 5 * time.Minute

// MenuService handles menu CRUD and the item-of-the-day aggregation.
// Category normalization happens here, on every write path, so stored
// categories always group consistently (the customer menu never
// re-normalizes).
type MenuService struct {
	menuRepo  repositories.MenuItemRepository
	orderRepo repositories.OrderRepository
	cache     cache.Cache
}

// NewMenuService creates a new MenuService. cache may be nil, in which case
// the aggregation is recomputed on every call.
func NewMenuService(menuRepo repositories.MenuItemRepository, orderRepo repositories.OrderRepository, c cache.Cache) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		cache:     c,
	}
}

// Menu retrieves the items customers can order, grouped-ready by category.
func (s *MenuService) Menu() ([]models.MenuItem, error) {
	return s.menuRepo.GetAvailable()
}

// AllItems retrieves every menu item for the admin dashboard.
func (s *MenuService) AllItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

// GetItem retrieves a single menu item by its ID.
func (s *MenuService) GetItem(id string) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(id)
}

// CreateItem normalizes the category and persists a new menu item.
func (s *MenuService) CreateItem(item *models.MenuItem) error {
	if item.Name == "" || item.Category == "" {
		return fmt.Errorf("%w: name and category are required", apperrors.ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	item.Category = models.NormalizeCategory(item.Category)
	return s.menuRepo.Create(item)
}

// UpdateItem normalizes the category and saves an existing menu item.
func (s *MenuService) UpdateItem(item *models.MenuItem) error {
	if item.Name == "" || item.Category == "" {
		return fmt.Errorf("%w: name and category are required", apperrors.ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	item.Category = models.NormalizeCategory(item.Category)
	return s.menuRepo.Update(item)
}

// DeleteItem removes a menu item by its ID.
func (s *MenuService) DeleteItem(id string) error {
	return s.menuRepo.Delete(id)
}

// ItemOfTheDay returns the most-ordered menu item, falling back to the
// first available item when no orders reference anything on the menu. The
// result is cached; cache failures degrade to a recompute.
func (s *MenuService) ItemOfTheDay(ctx context.Context) (*models.MenuItem, error) {
	var cacheKey string
	if s.cache != nil {
		cacheKey = s.cache.GenerateKey("aggregation", "item_of_the_day")
		if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
			log.Printf("Warning: item-of-the-day cache read failed: %v", err)
		} else if cached != "" {
			var item models.MenuItem
			if err := json.Unmarshal([]byte(cached), &item); err == nil {
				return &item, nil
			}
			log.Printf("Warning: discarding malformed item-of-the-day cache entry")
		}
	}

	item, err := s.mostOrderedItem()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if body, err := json.Marshal(item); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(body), itemOfTheDayTTL); err != nil {
				log.Printf("Warning: item-of-the-day cache write failed: %v", err)
			}
		}
	}

	return item, nil
}

// mostOrderedItem counts line-item quantities across all orders and maps
// the winner back onto the menu by name. Ties keep the first name to reach
// the winning count.
func (s *MenuService) mostOrderedItem() (*models.MenuItem, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	counts := make(map[string]int)
	var best string
	for _, order := range orders {
		for _, line := range order.Items {
			counts[line.Name] += line.Quantity
			if best == "" || counts[line.Name] > counts[best] {
				best = line.Name
			}
		}
	}

	available, err := s.menuRepo.GetAvailable()
	if err != nil {
		return nil, fmt.Errorf("failed to load menu for aggregation: %w", err)
	}
	if best != "" {
		for i := range available {
			if available[i].Name == best {
				return &available[i], nil
			}
		}
	}

	// Nothing ordered yet, or the favourite left the menu.
	if len(available) > 0 {
		return &available[0], nil
	}
	return nil, fmt.Errorf("no available menu items: %w", apperrors.ErrNotFound)
}
