package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// Names of the broker objects declared by NewClient.
const (
	EventsExchange = "dailydiet.events"
	EventsQueue    = "meal_events"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	// amqp.Channel is not safe for concurrent publishes.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, declares the events exchange and binds the
// events queue to every routing key.
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

	if err := declareTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	slog.Info("RabbitMQ client connected", "exchange", EventsExchange, "queue", EventsQueue)

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareTopology(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(
		EventsExchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", EventsExchange, err)
	}

	_, err = ch.QueueDeclare(
		EventsQueue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s queue: %w", EventsQueue, err)
	}

	if err := ch.QueueBind(EventsQueue, "#", EventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s queue: %w", EventsQueue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
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
	return errors.Join(errs...)
}

// NewPublishing marshals payload into a persistent JSON message.
func NewPublishing(routingKey string, payload interface{}) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         routingKey,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}, nil
}

// PublishEvent publishes payload as JSON on the events exchange.
func (c *Client) PublishEvent(routingKey string, payload interface{}) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	msg, err := NewPublishing(routingKey, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	err = c.channel.Publish(
		EventsExchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		msg,
	)
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}

	slog.Debug("event published", "routingKey", routingKey)
	return nil
}

// ConsumeEvents registers a consumer on the events queue and hands every
// delivery to handler in a goroutine. A handler error requeues the message
// unless it was already redelivered once.
func (c *Client) ConsumeEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		EventsQueue, // queue
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				slog.Error("failed to process event", "deliveryTag", msg.DeliveryTag, "error", err)
				if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
					slog.Error("failed to nack event", "deliveryTag", msg.DeliveryTag, "error", nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				slog.Error("failed to ack event", "deliveryTag", msg.DeliveryTag, "error", ackErr)
			}
		}
		slog.Info("event consumer stopped")
	}()

	return nil
}

// LogEvent is a consumer handler that logs each event at info level.
func LogEvent(msg amqp.Delivery) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		return fmt.Errorf("malformed event body: %w", err)
	}
	slog.Info("event received", "routingKey", msg.RoutingKey, "payload", payload)
	return nil
}
