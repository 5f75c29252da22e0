// Package config собирает настройки консольного клиента из флагов и переменных окружения.
//
// Приоритет: флаг, затем переменная окружения, затем значение по умолчанию.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/magabrotheeeer/primetrade/internal/client/session"
)

// Переменные окружения клиента.
const (
	EnvAPI       = "PRIMETRADE_API"
	EnvTokenFile = "PRIMETRADE_TOKEN_FILE"
)

// DefaultAPIURL адрес API по умолчанию.
const DefaultAPIURL = "http://localhost:8080/api"

// Config настройки клиента.
type Config struct {
	APIURL    string
	TokenFile string
	Timeout   time.Duration
}

// Load разбирает args (без имени программы) и возвращает настройки
// вместе с оставшимися аргументами, то есть подкомандой и её параметрами.
func Load(args []string, getenv func(string) string, output io.Writer) (*Config, []string, error) {
	const op = "config.Load"

	cfg := &Config{
		APIURL:    DefaultAPIURL,
		TokenFile: getenv(EnvTokenFile),
		Timeout:   10 * time.Second,
	}
	if v := getenv(EnvAPI); v != "" {
		cfg.APIURL = v
	}

	fs := flag.NewFlagSet("primetrade-cli", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "base URL of the PrimeTrade API")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "path to the session token file")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if cfg.TokenFile == "" {
		path, err := session.DefaultTokenPath()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", op, err)
		}
		cfg.TokenFile = path
	}
	return cfg, fs.Args(), nil
}
