package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"bhansa/internal/apperrors"
	"bhansa/internal/models"
	"bhansa/internal/repositories"
)

// DefaultPaymentDelay emulates provider round-trip latency. No real
// gateway is contacted.
const DefaultPaymentDelay = 1500 * time.Millisecond

// PaymentResult is what a provider stub reports back after processing.
// TransactionID is for display only and is not verified against any ledger.
type PaymentResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// PaymentService simulates the eSewa and Khalti payment providers. The
// simulation always succeeds: after the configured delay the order is
// marked paid and advanced to preparing.
type PaymentService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	delay     time.Duration
}

// NewPaymentService creates a new PaymentService with the given simulated
// processing delay.
func NewPaymentService(orderRepo repositories.OrderRepository, publisher EventPublisher, delay time.Duration) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		publisher: publisher,
		delay:     delay,
	}
}

// ProcessPayment waits the simulated provider latency, then marks the
// order's payment completed and derives status=preparing in one update.
// Cancelling ctx during the delay aborts without touching the order.
func (s *PaymentService) ProcessPayment(ctx context.Context, orderID string, provider models.PaymentMethod) (*PaymentResult, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment provider %q", apperrors.ErrValidation, provider)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
	}

	updated, err := s.orderRepo.UpdatePayment(orderID, models.PaymentCompleted, provider, models.StatusPreparing)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment for order %s: %w", orderID, err)
	}

	if s.publisher != nil {
		body, err := json.Marshal(updated)
		if err != nil {
			log.Printf("Failed to marshal order %s for payment event: %v", orderID, err)
		} else if err := s.publisher.Publish(RoutingOrderUpdated(orderID), body); err != nil {
			log.Printf("Warning: failed to publish payment update for order %s: %v", orderID, err)
		}
	}

	return &PaymentResult{
		Success:       true,
		Message:       "Payment processed successfully",
		TransactionID: transactionID(provider),
	}, nil
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// transactionID builds a display-only reference shaped like
// "ESEWA-1716899550123-k3xq81u9f".
func transactionID(provider models.PaymentMethod) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("%s-%d-%s", strings.ToUpper(string(provider)), time.Now().UnixMilli(), suffix)
}
