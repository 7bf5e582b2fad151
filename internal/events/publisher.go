package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"kitchen-orders/internal/domain"
)

const exchange = "orders_topic"

// OrderEvent is the JSON payload published for order lifecycle changes.
type OrderEvent struct {
	EventID        string    `json:"eventId"`
	Type           string    `json:"type"`
	OccurredAt     time.Time `json:"occurredAt"`
	OrderID        int64     `json:"orderId"`
	OrderCode      string    `json:"orderCode"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Total          string    `json:"total"`
	PickupAt       time.Time `json:"pickupAt"`
}

// Publisher sends order lifecycle events to a RabbitMQ topic exchange.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *log.Logger
}

// Dial connects to RabbitMQ and declares the orders exchange.
func Dial(url string, logger *log.Logger) (*Publisher, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, channel: channel, logger: logger}, nil
}

// OrderCreated publishes an order.created event.
func (p *Publisher) OrderCreated(ctx context.Context, o *domain.Order) error {
	return p.publish(ctx, "order.created", OrderEvent{
		EventID:       uuid.NewString(),
		Type:          "order.created",
		OccurredAt:    time.Now().UTC(),
		OrderID:       o.ID,
		OrderCode:     o.Code,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total.String(),
		PickupAt:      o.PickupAt,
	})
}

// OrderStatusChanged publishes an order.status event carrying the previous
// status label.
func (p *Publisher) OrderStatusChanged(ctx context.Context, o *domain.Order, previous string) error {
	return p.publish(ctx, "order.status", OrderEvent{
		EventID:        uuid.NewString(),
		Type:           "order.status",
		OccurredAt:     time.Now().UTC(),
		OrderID:        o.ID,
		OrderCode:      o.Code,
		Status:         o.Status,
		PaymentStatus:  o.PaymentStatus,
		PreviousStatus: previous,
		Total:          o.Total.String(),
		PickupAt:       o.PickupAt,
	})
}

func (p *Publisher) publish(ctx context.Context, routingKey string, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		p.logger.Printf("events: publish %s code=%s error=%v", routingKey, event.OrderCode, err)
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	p.logger.Printf("events: published %s code=%s", routingKey, event.OrderCode)
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
