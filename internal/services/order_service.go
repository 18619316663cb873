package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"bhansa/internal/apperrors"
	"bhansa/internal/models"
	"bhansa/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// recentOrdersLimit caps the public recent-orders listing.
const recentOrdersLimit = 5

// OrderService handles business logic related to orders: checkout,
// lookups, and workflow status transitions.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// CreateOrder validates and persists a customer checkout. The cart is
// snapshotted as-is; the total is recomputed server-side and a
// client-supplied total that disagrees is rejected.
func (s *OrderService) CreateOrder(orderRequest models.Order) (*models.Order, error) {
	orderRequest.ID = "" // the store assigns IDs

	if err := s.validate.Struct(orderRequest); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	computed := orderRequest.ComputedTotal()
	if orderRequest.TotalAmount != 0 && math.Abs(orderRequest.TotalAmount-computed) > 1e-9 {
		return nil, fmt.Errorf("%w: total_amount %.2f does not match item sum %.2f",
			apperrors.ErrValidation, orderRequest.TotalAmount, computed)
	}

	newOrder := &models.Order{
		CustomerName:  orderRequest.CustomerName,
		CustomerEmail: orderRequest.CustomerEmail,
		TableNumber:   orderRequest.TableNumber,
		Items:         orderRequest.Items,
		TotalAmount:   computed,
		Status:        models.StatusPending,
		PaymentMethod: orderRequest.PaymentMethod,
		PaymentStatus: models.PaymentPending,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.publishOrder(RoutingOrderCreated, newOrder)

	return newOrder, nil
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// AllOrders retrieves all orders for the admin dashboard, newest first.
func (s *OrderService) AllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// RecentOrders retrieves the latest orders for the public recent-orders
// view.
func (s *OrderService) RecentOrders() ([]models.Order, error) {
	return s.orderRepo.GetRecent(recentOrdersLimit)
}

// UpdateOrderStatus moves an order to a new workflow status. The lifecycle
// transition table is enforced here: an illegal move is rejected before any
// write reaches the store.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, status)
	}

	current, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot transition order from %s to %s",
			apperrors.ErrValidation, current.Status, status)
	}

	updated, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishOrder(RoutingOrderUpdated(id), updated)

	return updated, nil
}

// publishOrder best-effort publishes the full order record. Event delivery
// is a freshness optimization; the poll path recovers anything missed, so
// a publish failure is logged and swallowed.
func (s *OrderService) publishOrder(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(order)
	if err != nil {
		log.Printf("Failed to marshal order %s for event: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", routingKey, order.ID, err)
	}
}
