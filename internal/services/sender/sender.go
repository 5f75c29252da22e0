// Package sender отправляет пользователям письма о событиях учётной записи.
package sender

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/lib/smtp"
	"github.com/magabrotheeeer/primetrade/internal/models"
)

// ErrNoRecipient в событии отсутствует адрес получателя.
var ErrNoRecipient = errors.New("event has no recipient email")

// Service формирует и отправляет письма через SMTP транспорт.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport smtp.TransportInterface) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendWelcome обрабатывает событие регистрации и отправляет приветственное письмо.
func (s *Service) SendWelcome(body []byte) error {
	const op = "sender.SendWelcome"
	var event models.UserRegisteredEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if event.Email == "" {
		return fmt.Errorf("%s: %w", op, ErrNoRecipient)
	}

	name := event.Name
	if name == "" {
		name = event.Username
	}
	subject := "Welcome to PrimeTrade"
	bodyText := fmt.Sprintf("Hello, %s!\n\n"+
		"Your PrimeTrade account %q has been created.\n"+
		"You can now sign in and open your trading dashboard.\n",
		name, event.Username)

	if err := s.sendEmail([]string{event.Email}, subject, bodyText); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
