// Package website собирает зависимости сайта и запускает HTTP-сервер.
package website

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/cirec-website/internal/cache"
	"github.com/magabrotheeeer/cirec-website/internal/config"
	"github.com/magabrotheeeer/cirec-website/internal/http/middlewarectx"
	"github.com/magabrotheeeer/cirec-website/internal/lib/jwt"
	"github.com/magabrotheeeer/cirec-website/internal/lib/metrics"
	"github.com/magabrotheeeer/cirec-website/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/cirec-website/internal/lib/sl"
	"github.com/magabrotheeeer/cirec-website/internal/migrations"
	adminservice "github.com/magabrotheeeer/cirec-website/internal/services/admin"
	articleservice "github.com/magabrotheeeer/cirec-website/internal/services/articles"
	authservice "github.com/magabrotheeeer/cirec-website/internal/services/auth"
	subservice "github.com/magabrotheeeer/cirec-website/internal/services/subscription"
	"github.com/magabrotheeeer/cirec-website/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// EventPublisher публикатор событий, который нужно закрыть при остановке.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
	Close() error
}

// App приложение сайта.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher EventPublisher
}

// New подключается к базе, redis и брокеру, применяет миграции,
// создает администратора из конфига и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "website.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger:    logger,
		db:        db,
		cache:     cacheRedis,
		publisher: rabbitmq.NopPublisher{},
	}

	if cfg.RabbitURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitRetries, cfg.RabbitRetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitExchange, rabbitmq.AccountQueues())
		if err != nil {
			_ = conn.Close()
			app.close()
			return nil, err
		}
		app.amqpConn = conn
		app.publisher = rabbitmq.NewPublisher(ch, cfg.RabbitExchange)
	} else {
		logger.Warn("rabbitmq url is empty, events will not be published")
	}

	m := metrics.New()
	jwtMaker := jwt.NewJWTMaker(cfg.SecretKey, cfg.SessionTTL)

	services := Services{
		Auth:         authservice.New(logger, db, cacheRedis, app.publisher, jwtMaker, m, cfg.ResetTTL),
		Articles:     articleservice.New(logger, db, cacheRedis, m),
		Subscription: subservice.New(logger, db, app.publisher, m),
		Admin:        adminservice.New(logger, db, db, cfg.UploadFolder, cfg.MaxContentLength),
	}

	if err := services.Auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Services:      services,
		Metrics:       m,
		Database:      db,
		Cache:         cacheRedis,
		Cookie:        middlewarectx.SessionCookie{Name: cfg.CookieName, Secure: cfg.CookieSecure},
		AuthLimiter:   middlewarectx.NewClientLimiter(authRateLimit, authRateBurst),
		MaxUploadSize: cfg.MaxContentLength,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер.
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("failed to close publisher", sl.Err(err))
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
