package models_test

import (
	"testing"

	"bhansa/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusPreparing},
		{models.StatusPending, models.StatusCancelled},
		{models.StatusPreparing, models.StatusReady},
		{models.StatusPreparing, models.StatusCancelled},
		{models.StatusReady, models.StatusCompleted},
		{models.StatusReady, models.StatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be legal", tr.from, tr.to)
	}

	denied := []struct {
		from, to models.OrderStatus
	}{
		{models.StatusPending, models.StatusReady},
		{models.StatusPending, models.StatusCompleted},
		{models.StatusPreparing, models.StatusPending},
		{models.StatusReady, models.StatusPreparing},
		{models.StatusCompleted, models.StatusPending},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusCancelled, models.StatusPending},
		{models.StatusCancelled, models.StatusPreparing},
	}
	for _, tr := range denied {
		assert.False(t, tr.from.CanTransitionTo(tr.to), "%s -> %s should be illegal", tr.from, tr.to)
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, models.StatusCompleted.IsTerminal())
	assert.True(t, models.StatusCancelled.IsTerminal())
	assert.False(t, models.StatusPending.IsTerminal())
	assert.False(t, models.StatusPreparing.IsTerminal())
	assert.False(t, models.StatusReady.IsTerminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, models.StatusPending.IsValid())
	assert.False(t, models.OrderStatus("shipped").IsValid())
	assert.False(t, models.OrderStatus("").IsValid())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, models.MethodEsewa.IsValid())
	assert.True(t, models.MethodKhalti.IsValid())
	assert.False(t, models.PaymentMethod("paypal").IsValid())
}

func TestOrder_ComputedTotal(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Name: "Momo", Price: 150, Quantity: 2},
			{Name: "Chowmein", Price: 120.50, Quantity: 1},
		},
	}
	assert.Equal(t, 420.50, order.ComputedTotal())

	empty := models.Order{}
	assert.Equal(t, 0.0, empty.ComputedTotal())
}
