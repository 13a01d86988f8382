// Package familybudget собирает приложение: хранилище, кеш, брокер событий,
// бизнес-сервисы, HTTP-сервер и фоновые потребители очередей.
package familybudget

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/fambudgeteer/family-budget/internal/cache"
	"github.com/fambudgeteer/family-budget/internal/config"
	"github.com/fambudgeteer/family-budget/internal/lib/jwt"
	"github.com/fambudgeteer/family-budget/internal/lib/sl"
	"github.com/fambudgeteer/family-budget/internal/migrations"
	"github.com/fambudgeteer/family-budget/internal/rabbitmq"
	"github.com/fambudgeteer/family-budget/internal/realtime"
	"github.com/fambudgeteer/family-budget/internal/services/access"
	"github.com/fambudgeteer/family-budget/internal/services/admin"
	"github.com/fambudgeteer/family-budget/internal/services/auth"
	"github.com/fambudgeteer/family-budget/internal/services/billing"
	"github.com/fambudgeteer/family-budget/internal/services/category"
	"github.com/fambudgeteer/family-budget/internal/services/family"
	"github.com/fambudgeteer/family-budget/internal/services/liability"
	"github.com/fambudgeteer/family-budget/internal/services/networth"
	"github.com/fambudgeteer/family-budget/internal/services/transaction"
	"github.com/fambudgeteer/family-budget/internal/storage/repository"
)

// App агрегирует компоненты приложения и управляет их жизненным циклом.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
	cache      *cache.Cache
}

// New инициализирует все зависимости приложения и настраивает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.AddressRabbitMQ, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetEventQueues())
	if err != nil {
		return nil, err
	}
	publisher := &rabbitmq.Publisher{Ch: rabbitCh}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := auth.New(db, jwtMaker)
	accessService := access.New(db, publisher, logger, nil)
	categoryService := category.New(db, cacheRedis, logger)
	transactionService := transaction.New(db, cacheRedis, logger)
	liabilityService := liability.New(db, cacheRedis, publisher, logger)
	networthService := networth.New(db, cacheRedis, logger)
	familyService := family.New(db, logger)
	adminService := admin.New(db, logger)
	billingService := billing.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, cfg.WebhookSecret,
		authService, accessService, categoryService, transactionService,
		liabilityService, networthService, familyService, adminService,
		billingService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
		cache:      cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и фоновые потребители очередей, блокируясь
// до отмены контекста или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := access.RunAuditWriter(ctx, a.rabbitCh, a.db, a.logger); err != nil {
			a.logger.Error("audit writer stopped", sl.Err(err))
		}
	}()
	go func() {
		if err := realtime.RunLiabilityFeed(ctx, a.rabbitCh, a.cache, a.logger); err != nil {
			a.logger.Error("liability feed stopped", sl.Err(err))
		}
	}()

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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.rabbitCh.Close(); cerr != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(cerr))
		}
		if cerr := a.rabbitConn.Close(); cerr != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Warn("failed to close database", sl.Err(cerr))
		}
		return err
	}
}
