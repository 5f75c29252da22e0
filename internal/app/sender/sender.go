// Package sender собирает сервис уведомлений: читает события регистрации
// из RabbitMQ и отправляет приветственные письма через SMTP.
package sender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/primetrade/internal/config"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/lib/smtp"
	"github.com/magabrotheeeer/primetrade/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/primetrade/internal/services/sender"
)

// App сервис уведомлений.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New подключается к брокеру и объявляет очереди событий учётных записей.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.sender.New"

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetAuthQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderservice.New(logger, transport),
		logger:        logger,
	}, nil
}

// Run запускает потребителя и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.QueueUserRegistered, a.senderService.SendWelcome)
	if err != nil {
		a.logger.Error("failed to start consumer",
			slog.String("queue", rabbitmq.QueueUserRegistered), sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
