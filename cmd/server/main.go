package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/payproc/internal/adapter/http"
	"github.com/iho/payproc/internal/adapter/http/handler"
	"github.com/iho/payproc/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/payproc/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/payproc/internal/adapter/repository/redis"
	"github.com/iho/payproc/internal/infrastructure/auth"
	"github.com/iho/payproc/internal/infrastructure/config"
	"github.com/iho/payproc/internal/infrastructure/eventpublisher"
	"github.com/iho/payproc/internal/infrastructure/logger"
	"github.com/iho/payproc/internal/infrastructure/metrics"
	"github.com/iho/payproc/internal/infrastructure/postgres"
	"github.com/iho/payproc/internal/infrastructure/redis"
	"github.com/iho/payproc/internal/usecase"
)

// errMissingJWTSecret is returned when auth is enabled without a secret.
var errMissingJWTSecret = errors.New("AUTH_ENABLED requires JWT_SECRET")

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.RunMigrations {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log).Up(); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClientWithConfig(ctx, redis.ClientConfig{
		URL:         cfg.RedisURL,
		PoolSize:    cfg.RedisPoolSize,
		DialTimeout: cfg.RedisDialTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	verifier, err := newTokenVerifier(cfg)
	if err != nil {
		return err
	}

	m := metrics.New(nil)

	// Initialize repositories
	idGen := postgresRepo.NewULIDGenerator()
	txManager := postgresRepo.NewTxManager(pool, postgresRepo.WithIsolation(pgx.TxIsoLevel(cfg.DatabaseIsolation)))
	retrier := postgresRepo.NewRetrier(log, postgresRepo.WithMaxRetries(cfg.DatabaseMaxRetries))
	moveRepo := postgresRepo.NewMoveRepository(pool, idGen)
	reconciliationRepo := postgresRepo.NewReconciliationRepository(idGen)
	paymentRepo := postgresRepo.NewPaymentRepository(pool, idGen)
	periodRepo := postgresRepo.NewPeriodRepository(pool)
	currencyRepo := postgresRepo.NewCurrencyRepository(pool)
	statementLineRepo := postgresRepo.NewStatementLineRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	outboxRepo := newOutboxRepository(cfg, pool, log)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	rateCache := redisRepo.NewCache(redisClient, "rates")

	// Initialize use cases
	clock := usecase.NewSystemClock()
	converter := usecase.NewRateConverter(currencyRepo, rateCache, cfg.RateCacheTTL, log, m)
	generator := usecase.NewProcessingMoveGenerator(clock, periodRepo, converter, idGen)
	clearing := usecase.NewClearingMoveIntegrator(
		usecase.NewClearingMoveBuilder(clock, periodRepo, converter, idGen),
	)
	matcher := usecase.NewReconciliationMatcher(reconciliationRepo, log, m)
	workflow := usecase.NewPaymentWorkflow(
		paymentRepo, generator, clearing, matcher,
		moveRepo, reconciliationRepo, paymentRepo, log, m,
	)
	paymentUC := usecase.NewPaymentUseCase(txManager, retrier, paymentRepo, workflow, outboxRepo, idGen, log)
	statementUC := usecase.NewStatementLineUseCase(
		usecase.NewStatementMoveBuilder(moveRepo, statementLineRepo, periodRepo, idGen),
		matcher, statementLineRepo, outboxRepo, txManager, retrier, idGen, log, m,
	)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)

	// Background workers
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	if cfg.OutboxEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  newPublisher(cfg, redisClient, log),
			Logger:     log,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := publisher.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("event publisher stopped")
			}
		}()
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.RunCleanup(workerCtx, time.Hour)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PaymentHandler:       handler.NewPaymentHandler(paymentUC),
		StatementLineHandler: handler.NewStatementLineHandler(statementUC),
		LedgerHandler:        handler.NewLedgerHandler(ledgerUC),
		HealthHandler:        handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:     idempotencyStore,
		IdempotencyTTL:       cfg.IdempotencyTTL,
		RateLimiter:          rateLimiter,
		TokenVerifier:        verifier,
		Logger:               log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Bool("auth", verifier != nil).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	cancelWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

// newTokenVerifier returns nil when auth is disabled.
func newTokenVerifier(cfg *config.Config) (middleware.TokenVerifier, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	if cfg.JWTSecret == "" {
		return nil, errMissingJWTSecret
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), nil
}

func newOutboxRepository(cfg *config.Config, db postgresRepo.DB, log zerolog.Logger) usecase.OutboxRepository {
	if !cfg.OutboxEnabled {
		return postgresRepo.NewNullOutboxRepository(log)
	}
	return postgresRepo.NewOutboxRepository(db)
}

func newPublisher(cfg *config.Config, client *goredis.Client, log zerolog.Logger) eventpublisher.Publisher {
	if cfg.OutboxStream == "" || client == nil {
		return eventpublisher.NewLogPublisher(log)
	}
	return eventpublisher.NewRedisStreamPublisher(client, cfg.OutboxStream)
}
