package rabbitmq

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// Exchange carrying order change events. Routing keys follow
// "order.created" and "order.updated.<order id>", so a tracker can bind to
// updates for a single order while dashboards bind to "order.updated.*".
const ordersExchange = "orders.events"

// Client holds the RabbitMQ connection and the channel used for publishing.
// Subscriptions open their own channels so cancelling one consumer never
// disturbs the publisher.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a publishing channel, and declares
// the orders topic exchange.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ordersExchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-delete
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s exchange: %w", ordersExchange, err)
	}

	log.Printf("RabbitMQ client connected, %s exchange declared", ordersExchange)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

// Close closes the RabbitMQ connection and publishing channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a JSON body to the orders exchange under the given routing
// key.
func (c *Client) Publish(routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		ordersExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Subscription is an active consumer bound to one routing key. Close
// cancels the consumer and releases its channel; the bound queue is
// auto-deleted by the broker.
type Subscription struct {
	channel *amqp.Channel
	tag     string
}

// Close cancels the consumer and closes its channel.
func (s *Subscription) Close() error {
	if err := s.channel.Cancel(s.tag, false); err != nil {
		s.channel.Close()
		return fmt.Errorf("failed to cancel consumer %s: %w", s.tag, err)
	}
	if err := s.channel.Close(); err != nil {
		return fmt.Errorf("failed to close subscription channel: %w", err)
	}
	return nil
}

// Subscribe binds an exclusive auto-delete queue to the given routing key
// and invokes handler with the body of every delivery. Change events are
// transient notifications, so deliveries are auto-acked; a missed event is
// recovered by the next poll.
func (c *Client) Subscribe(routingKey string, handler func(body []byte)) (*Subscription, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open subscription channel: %w", err)
	}

	queue, err := ch.QueueDeclare(
		"",    // name: broker-generated
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare subscription queue: %w", err)
	}

	if err := ch.QueueBind(queue.Name, routingKey, ordersExchange, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to bind queue to %s: %w", routingKey, err)
	}

	tag := uuid.New().String()
	msgs, err := ch.Consume(
		queue.Name, // queue
		tag,        // consumer tag
		true,       // auto-ack
		true,       // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handler(msg.Body)
		}
	}()

	return &Subscription{channel: ch, tag: tag}, nil
}
