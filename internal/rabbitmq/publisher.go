package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/primetrade/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует события аутентификации в обменник auth_events.
// amqp.Channel не безопасен для конкурентной публикации, поэтому вызовы сериализуются.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher создаёт издателя поверх настроенного канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishUserRegistered публикует событие регистрации нового пользователя.
func (p *Publisher) PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error {
	const op = "rabbitmq.PublishUserRegistered"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := PublishMessage(p.ch, ExchangeAuthEvents, RoutingKeyUserRegistered, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// NoopPublisher используется, когда брокер отключён в конфигурации.
type NoopPublisher struct{}

// PublishUserRegistered ничего не делает.
func (NoopPublisher) PublishUserRegistered(context.Context, models.UserRegisteredEvent) error {
	return nil
}
