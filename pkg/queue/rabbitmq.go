package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"inkwell/pkg/config"
	"inkwell/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
)

// Client publishes best-effort notification tasks (review decisions, likes).
// Publishing failures are logged only; they never fail the request that
// produced them.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(NotificationQueueName, NotificationQueueName, NotificationExchange, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &Client{conn: conn, channel: channel, logger: log}, nil
}

func (c *Client) PublishNotificationTask(task map[string]interface{}) error {
	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	return c.channel.Publish(
		NotificationExchange,
		NotificationQueueName,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}

// ConsumeNotificationTasks registers a consumer and dispatches each decoded
// task to handler on a background goroutine. A handler error requeues the
// message; a malformed payload is dropped.
func (c *Client) ConsumeNotificationTasks(handler func(task map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		NotificationQueueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Started consuming from queue %s", NotificationQueueName)

	go func() {
		for msg := range msgs {
			var task map[string]interface{}
			if err := json.Unmarshal(msg.Body, &task); err != nil {
				c.logger.Error("Failed to unmarshal notification task: %v", err)
				msg.Nack(false, false)
				continue
			}

			if err := handler(task); err != nil {
				c.logger.Error("Failed to process notification task: %v", err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// GetQueueLength reports the number of messages waiting in the queue.
func (c *Client) GetQueueLength() (int, error) {
	q, err := c.channel.QueueInspect(NotificationQueueName)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue: %w", err)
	}
	return q.Messages, nil
}

func (c *Client) Close() {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
