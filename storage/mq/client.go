package mq

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"HerShield/config"
)

const (
	// NotificationExchange 通知类消息统一走这个 topic exchange
	NotificationExchange = "notification.topic"

	// ContactAddedQueue 新增联系人知会短信任务队列
	ContactAddedQueue      = "contact.added"
	ContactAddedRoutingKey = "contact.added"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

func Init() error {
	connOnce.Do(func() {
		url := config.Cfg.GetRabbitMQURL()

		conn, connErr = amqp.Dial(url)
		if connErr != nil {
			connErr = fmt.Errorf("failed to dial RabbitMQ: %w", connErr)
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

// declareTopology 声明 exchange、队列和绑定，幂等，server 和 worker 都会调用
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		NotificationExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(
		ContactAddedQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		ContactAddedQueue,
		ContactAddedRoutingKey,
		NotificationExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	return nil
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}
	return conn.Close()
}
