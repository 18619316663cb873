package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bhansa/internal/apperrors"
	"bhansa/internal/models"
	"bhansa/internal/repositories"
	"bhansa/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache is an in-memory stand-in for the Redis aggregation cache.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value.(string)
	c.sets++
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *fakeCache) GenerateKey(operation, key string) string {
	return "test:" + operation + ":" + key
}

func menuFixture(t *testing.T) (*services.MenuService, *repositories.MockMenuItemRepository, *repositories.MockOrderRepository) {
	t.Helper()
	menuRepo := repositories.NewMockMenuItemRepository()
	orderRepo := repositories.NewMockOrderRepository()
	return services.NewMenuService(menuRepo, orderRepo, nil), menuRepo, orderRepo
}

func TestMenuService_CreateItem_NormalizesCategory(t *testing.T) {
	service, menuRepo, _ := menuFixture(t)

	first := &models.MenuItem{Name: "Veg Pakora", Category: "APPETIZERS", Price: 90, Available: true}
	second := &models.MenuItem{Name: "Paneer Chilli", Category: "appetizers", Price: 180, Available: true}
	require.NoError(t, service.CreateItem(first))
	require.NoError(t, service.CreateItem(second))

	// Case-variant admin input lands in one normalized group.
	assert.Equal(t, "Appetizers", first.Category)
	assert.Equal(t, "Appetizers", second.Category)

	items, err := menuRepo.GetAll()
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, "Appetizers", item.Category)
	}
}

func TestMenuService_UpdateItem_NormalizesCategory(t *testing.T) {
	service, menuRepo, _ := menuFixture(t)

	item := &models.MenuItem{Name: "Momo", Category: "Main Course", Price: 150, Available: true}
	require.NoError(t, service.CreateItem(item))

	item.Category = "MAIN course"
	require.NoError(t, service.UpdateItem(item))

	stored, err := menuRepo.GetByID(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main Course", stored.Category)
}

func TestMenuService_CreateItem_Validation(t *testing.T) {
	service, _, _ := menuFixture(t)

	err := service.CreateItem(&models.MenuItem{Name: "", Category: "Drinks"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = service.CreateItem(&models.MenuItem{Name: "Tea", Category: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = service.CreateItem(&models.MenuItem{Name: "Tea", Category: "Drinks", Price: -5})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMenuService_Menu_OnlyAvailableItems(t *testing.T) {
	service, _, _ := menuFixture(t)

	require.NoError(t, service.CreateItem(&models.MenuItem{Name: "Momo", Category: "Main Course", Price: 150, Available: true}))
	require.NoError(t, service.CreateItem(&models.MenuItem{Name: "Sukuti", Category: "Main Course", Price: 250, Available: false}))

	menu, err := service.Menu()
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "Momo", menu[0].Name)
}

func TestMenuService_ItemOfTheDay_MostOrderedWins(t *testing.T) {
	service, _, orderRepo := menuFixture(t)

	require.NoError(t, service.CreateItem(&models.MenuItem{Name: "Momo", Category: "Main Course", Price: 150, Available: true}))
	require.NoError(t, service.CreateItem(&models.MenuItem{Name: "Chowmein", Category: "Main Course", Price: 120, Available: true}))

	require.NoError(t, orderRepo.Create(&models.Order{
		Items: []models.OrderItem{
			{Name: "Momo", Price: 150, Quantity: 1},
			{Name: "Chowmein", Price: 120, Quantity: 4},
		},
	}))
	require.NoError(t, orderRepo.Create(&models.Order{
		Items: []models.OrderItem{{Name: "Momo", Price: 150, Quantity: 2}},
	}))

	item, err := service.ItemOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Chowmein", item.Name) // 4 vs 3 by quantity
}

func TestMenuService_ItemOfTheDay_FallbackWhenNoOrders(t *testing.T) {
	service, _, _ := menuFixture(t)

	require.NoError(t, service.CreateItem(&models.MenuItem{Name: "Momo", Category: "Main Course", Price: 150, Available: true}))

	item, err := service.ItemOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Momo", item.Name)
}

func TestMenuService_ItemOfTheDay_EmptyMenu(t *testing.T) {
	service, _, _ := menuFixture(t)

	item, err := service.ItemOfTheDay(context.Background())
	assert.Nil(t, item)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMenuService_ItemOfTheDay_UsesCache(t *testing.T) {
	menuRepo := repositories.NewMockMenuItemRepository()
	orderRepo := repositories.NewMockOrderRepository()
	c := newFakeCache()
	service := services.NewMenuService(menuRepo, orderRepo, c)

	require.NoError(t, service.CreateItem(&models.MenuItem{Name: "Momo", Category: "Main Course", Price: 150, Available: true}))

	first, err := service.ItemOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, c.sets)

	// The menu changes, but within the TTL the cached answer stands.
	require.NoError(t, service.DeleteItem(first.ID))
	second, err := service.ItemOfTheDay(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, c.sets, "a cache hit must not recompute")
}
