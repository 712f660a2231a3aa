package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/payproc/internal/adapter/http/handler"
	"github.com/iho/payproc/internal/adapter/http/middleware"
	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PaymentHandler       *handler.PaymentHandler
	StatementLineHandler *handler.StatementLineHandler
	LedgerHandler        *handler.LedgerHandler
	HealthHandler        *handler.HealthHandler
	IdempotencyStore     usecase.IdempotencyStore
	IdempotencyTTL       time.Duration
	RateLimiter          *middleware.RateLimiter
	// TokenVerifier enables JWT auth on /api/v1 when set.
	TokenVerifier  middleware.TokenVerifier
	MetricsHandler http.Handler
	Logger         zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	metricsHandler := cfg.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	requireRole := func(role domain.Role) func(http.Handler) http.Handler {
		if cfg.TokenVerifier == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.RequireRole(role)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.TokenVerifier != nil {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Payments
		r.Route("/payments", func(r chi.Router) {
			r.With(requireRole(domain.RoleOperator)).Post("/process", cfg.PaymentHandler.Process)
			r.With(requireRole(domain.RoleOperator)).Post("/succeed", cfg.PaymentHandler.Succeed)
			r.With(requireRole(domain.RoleOperator)).Post("/fail", cfg.PaymentHandler.Fail)
			r.With(requireRole(domain.RoleViewer)).Get("/{id}", cfg.PaymentHandler.Get)
			r.With(requireRole(domain.RoleViewer)).Get("/{id}/processing-move", cfg.PaymentHandler.GetProcessingMove)
		})

		// Statement lines
		r.Route("/statement-lines/{id}", func(r chi.Router) {
			r.Use(requireRole(domain.RoleOperator))
			r.Post("/changes/{field}", cfg.StatementLineHandler.SuggestChanges)
			r.Post("/move", cfg.StatementLineHandler.CreateMove)
		})

		// Ledger
		r.With(requireRole(domain.RoleViewer)).Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
