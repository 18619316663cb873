package handlers

import (
	"log"

	"bhansa/internal/models"
	"bhansa/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for the menu, both the public customer
// view and the admin CRUD surface.
type MenuHandler struct {
	service *services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService) *MenuHandler {
	return &MenuHandler{
		service: service,
	}
}

// RegisterRoutes registers the public menu routes.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleGetMenu)
	menuRoutes.Get("/item-of-the-day", h.HandleItemOfTheDay)
}

// RegisterAdminRoutes registers the admin CRUD routes; the caller guards
// the router group with auth middleware.
func (h *MenuHandler) RegisterAdminRoutes(router fiber.Router) {
	menuRoutes := router.Group("/menu")
	menuRoutes.Get("/", h.HandleGetAllItems)
	menuRoutes.Post("/", h.HandleCreateItem)
	menuRoutes.Put("/:id", h.HandleUpdateItem)
	menuRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetMenu returns the items customers can order. Categories are
// already stored normalized, so clients group on them directly.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	items, err := h.service.Menu()
	if err != nil {
		log.Printf("Error getting menu: %v", err)
		return fail(c, "Could not retrieve menu", err)
	}
	return c.JSON(items)
}

// HandleItemOfTheDay returns the most-ordered available item.
func (h *MenuHandler) HandleItemOfTheDay(c *fiber.Ctx) error {
	item, err := h.service.ItemOfTheDay(c.Context())
	if err != nil {
		log.Printf("Error getting item of the day: %v", err)
		return fail(c, "Could not determine item of the day", err)
	}
	return c.JSON(item)
}

// HandleGetAllItems returns every menu item, including unavailable ones,
// for the admin dashboard.
func (h *MenuHandler) HandleGetAllItems(c *fiber.Ctx) error {
	items, err := h.service.AllItems()
	if err != nil {
		log.Printf("Error getting all menu items: %v", err)
		return fail(c, "Could not retrieve menu items", err)
	}
	return c.JSON(items)
}

// HandleCreateItem creates a new menu item.
func (h *MenuHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateItem(&item); err != nil {
		log.Printf("Error creating menu item: %v", err)
		return fail(c, "Could not create menu item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing menu item.
func (h *MenuHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")

	if err := h.service.UpdateItem(&item); err != nil {
		log.Printf("Error updating menu item %s: %v", item.ID, err)
		return fail(c, "Could not update menu item", err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes a menu item by its ID.
func (h *MenuHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteItem(id); err != nil {
		log.Printf("Error deleting menu item %s: %v", id, err)
		return fail(c, "Could not delete menu item", err)
	}
	return c.JSON(fiber.Map{
		"message": "Menu item deleted successfully",
	})
}
