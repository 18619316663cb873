package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"bhansa/internal/models"
	"bhansa/internal/services"
	"bhansa/internal/tracking"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// sseHeartbeat keeps idle event streams alive and doubles as the
// disconnect probe: a failed write tears the tracker down.
const sseHeartbeat = 15 * time.Second

// TrackerFactory builds a status tracker for one order.
type TrackerFactory func(orderID string) (*tracking.Tracker, error)

// OrderHandler handles HTTP requests for orders: checkout, lookups,
// payment, the live status stream, and the admin workflow.
type OrderHandler struct {
	service    *services.OrderService
	payments   *services.PaymentService
	newTracker TrackerFactory
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, payments *services.PaymentService, newTracker TrackerFactory) *OrderHandler {
	return &OrderHandler{
		service:    service,
		payments:   payments,
		newTracker: newTracker,
	}
}

// RegisterRoutes registers the public order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/recent", h.HandleRecentOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/:id/pay", h.HandlePayOrder)
	orderRoutes.Get("/:id/events", h.HandleOrderEvents)
}

// RegisterAdminRoutes registers the admin workflow routes; the caller
// guards the router group with auth middleware.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandleCreateOrder creates a new order from a customer checkout.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var orderRequest models.Order
	if err := c.BodyParser(&orderRequest); err != nil {
		log.Printf("Error parsing checkout body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	createdOrder, err := h.service.CreateOrder(orderRequest)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return fail(c, "Could not create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrder(orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return fail(c, "Could not retrieve order", err)
	}
	return c.JSON(order)
}

// HandleRecentOrders returns the latest orders for the public
// recent-orders view.
func (h *OrderHandler) HandleRecentOrders(c *fiber.Ctx) error {
	orders, err := h.service.RecentOrders()
	if err != nil {
		log.Printf("Error getting recent orders: %v", err)
		return fail(c, "Could not retrieve recent orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrders retrieves all orders for the admin dashboard.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.AllOrders()
	if err != nil {
		log.Printf("Error getting all orders: %v", err)
		return fail(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// PayRequest selects the payment provider for an order.
type PayRequest struct {
	Provider models.PaymentMethod `json:"provider"`
}

// HandlePayOrder runs the simulated payment for an order and reports the
// provider result. The call blocks for the simulated provider latency.
func (h *OrderHandler) HandlePayOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	result, err := h.payments.ProcessPayment(c.Context(), orderID, req.Provider)
	if err != nil {
		log.Printf("Error processing payment for order %s: %v", orderID, err)
		return fail(c, "Could not process payment", err)
	}
	return c.JSON(result)
}

// UpdateStatusRequest carries the target workflow status.
type UpdateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// HandleUpdateOrderStatus moves an order to a new workflow status. Illegal
// transitions are rejected by the service with a validation error.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update",
		})
	}

	updated, err := h.service.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		log.Printf("Error updating order %s status: %v", orderID, err)
		return fail(c, "Could not update order status", err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated to %s", orderID, updated.Status),
		"order":   updated,
	})
}

// HandleOrderEvents streams live order state over SSE. The first event is
// the current snapshot; afterwards every accepted tracker write becomes an
// event. Client disconnect or stream end stops the tracker, which cancels
// the poll timer and the push subscription together.
func (h *OrderHandler) HandleOrderEvents(c *fiber.Ctx) error {
	orderID := c.Params("id")

	tracker, err := h.newTracker(orderID)
	if err != nil {
		log.Printf("Error starting tracker for order %s: %v", orderID, err)
		return fail(c, "Could not track order", err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer tracker.Stop()

		writeEvent := func(order models.Order) bool {
			body, err := json.Marshal(order)
			if err != nil {
				log.Printf("Failed to marshal order %s event: %v", orderID, err)
				return false
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", body); err != nil {
				return false
			}
			return w.Flush() == nil
		}

		if !writeEvent(tracker.Snapshot()) {
			return
		}

		heartbeat := time.NewTicker(sseHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case order, ok := <-tracker.Updates():
				if !ok || !writeEvent(order) {
					return
				}
			case <-heartbeat.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
