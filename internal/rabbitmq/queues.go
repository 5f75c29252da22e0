package rabbitmq

const (
	// ExchangeAuthEvents обменник событий аутентификации.
	ExchangeAuthEvents = "auth_events"
	// RoutingKeyUserRegistered ключ события регистрации пользователя.
	RoutingKeyUserRegistered = "user.registered"
	// QueueUserRegistered очередь приветственных писем.
	QueueUserRegistered = "auth.user_registered"
)

// QueueConfig описывает очередь и ключ, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetAuthQueues возвращает очереди, которые слушает сервис уведомлений.
func GetAuthQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueUserRegistered, RoutingKey: RoutingKeyUserRegistered},
	}
}
