package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/primetrade/internal/client/api"
	"github.com/magabrotheeeer/primetrade/internal/client/cli"
	"github.com/magabrotheeeer/primetrade/internal/client/config"
	"github.com/magabrotheeeer/primetrade/internal/client/session"
)

func main() {
	cfg, args, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := api.New(cfg.APIURL, api.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	manager := session.NewManager(client, session.NewFileStore(cfg.TokenFile), logger)

	if err := cli.New(manager, os.Stdin, os.Stdout).Run(ctx, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
