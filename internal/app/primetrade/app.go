// Package primetrade собирает HTTP API: хранилище, сервисы аутентификации и дашборда,
// маршруты и сервер с корректным завершением работы.
package primetrade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/primetrade/internal/cache"
	"github.com/magabrotheeeer/primetrade/internal/config"
	"github.com/magabrotheeeer/primetrade/internal/lib/jwt"
	"github.com/magabrotheeeer/primetrade/internal/lib/password"
	"github.com/magabrotheeeer/primetrade/internal/lib/sl"
	"github.com/magabrotheeeer/primetrade/internal/metrics"
	"github.com/magabrotheeeer/primetrade/internal/migrations"
	"github.com/magabrotheeeer/primetrade/internal/rabbitmq"
	"github.com/magabrotheeeer/primetrade/internal/services/auth"
	"github.com/magabrotheeeer/primetrade/internal/services/dashboard"
	"github.com/magabrotheeeer/primetrade/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP API вместе с его внешними подключениями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключается к PostgreSQL, применяет миграции и собирает сервисы.
// Redis и RabbitMQ подключаются только если включены в конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.primetrade.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	a := &App{
		logger: logger,
		db:     db,
	}

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		a.closeConnections()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(ctx, db); err != nil {
		a.closeConnections()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var revoker auth.TokenRevoker = cache.NoopRevoker{}
	var dashboardCache dashboard.Cache
	if cfg.RedisConnection.Enabled {
		a.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			a.closeConnections()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		revoker = cache.NewRevoker(a.cache)
		if cfg.Dashboard.CacheTTL > 0 {
			dashboardCache = a.cache
		}
		logger.Info("redis enabled", slog.String("address", cfg.AddressRedis))
	}

	var publisher auth.EventPublisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQ.Enabled {
		a.conn, err = rabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			a.closeConnections()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		a.ch, err = rabbitmq.SetupChannel(a.conn, rabbitmq.GetAuthQueues())
		if err != nil {
			a.closeConnections()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = rabbitmq.NewPublisher(a.ch)
		logger.Info("rabbitmq enabled")
	}

	m := metrics.New(prometheus.NewRegistry())

	authService := auth.NewAuthService(auth.Deps{
		Users:     db,
		Hasher:    password.NewHasher(cfg.BcryptCost),
		JWTMaker:  jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Revoker:   revoker,
		Publisher: publisher,
		Recorder:  m,
		Log:       logger,
	})
	dashboardService := dashboard.NewService(logger, dashboard.NewRandomProvider(), dashboardCache, cfg.Dashboard.CacheTTL)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:      authService,
		Dashboard: dashboardService,
		Metrics:   m,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		DB:        db.DB,
	})

	a.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return a, nil
}

// Run запускает HTTP сервер и блокируется до отмены ctx или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeConnections()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeConnections()
		return err
	}
}

func (a *App) closeConnections() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
