package models

import "time"

// OrderItem is a single line item within an order. The cart is snapshotted
// at checkout, so name and price are copied rather than referenced.
type OrderItem struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	ImageURL string  `json:"image_url,omitempty"`
}

// Order represents a customer's submitted cart plus workflow and payment
// metadata. Items are immutable after creation; only status fields change.
type Order struct {
	ID            string        `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CustomerName  string        `json:"customer_name" validate:"required"`
	CustomerEmail string        `json:"customer_email" validate:"required,email"`
	TableNumber   int           `json:"table_number" validate:"required,min=1"`
	Items         []OrderItem   `json:"items" gorm:"serializer:json" validate:"required,min=1,dive"`
	TotalAmount   float64       `json:"total_amount"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(20)"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(20)" validate:"required,oneof=esewa khalti"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20)"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ComputedTotal returns the sum of price x quantity over all line items.
func (o *Order) ComputedTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
