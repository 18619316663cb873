package repositories

import "bhansa/internal/models"

// OrderRepository defines the interface for order data access. Orders are
// never deleted in normal flow, so no Delete is exposed.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetRecent(limit int) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status models.OrderStatus) (*models.Order, error)
	UpdatePayment(id string, paymentStatus models.PaymentStatus, method models.PaymentMethod, status models.OrderStatus) (*models.Order, error)
}
