package services

// EventPublisher publishes order change events to the message broker.
// Implemented by pkg/rabbitmq.Client; tests use an in-memory fake.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// RoutingOrderCreated is the routing key for newly created orders.
const RoutingOrderCreated = "order.created"

// RoutingOrderUpdated returns the routing key carrying status and payment
// updates for a single order. Trackers bind to exactly this key.
func RoutingOrderUpdated(orderID string) string {
	return "order.updated." + orderID
}
