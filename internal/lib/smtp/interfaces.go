// Package smtp предоставляет интерфейсы и транспорт для отправки писем по SMTP.
package smtp

import (
	"errors"
	"io"
)

// ErrNoStartTLS сервер не поддерживает расширение STARTTLS.
var ErrNoStartTLS = errors.New("STARTTLS not supported")

// Client интерфейс для SMTP клиента.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс для SMTP транспорта.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
