package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

// Clock resolves the current business date.
type Clock interface {
	Today(ctx context.Context) time.Time
}

// PeriodFinder finds the accounting period covering a date.
type PeriodFinder interface {
	Find(ctx context.Context, tx Transaction, companyID string, date time.Time) (*domain.Period, error)
}

// CurrencyConverter converts amounts using the rate valid at asOf.
type CurrencyConverter interface {
	Convert(ctx context.Context, from string, amount decimal.Decimal, to string, asOf time.Time) (decimal.Decimal, error)
}

// RateRepository reads currency rates and precision.
type RateRepository interface {
	// RateAsOf returns the latest from->to rate effective on or before date.
	RateAsOf(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
	Digits(ctx context.Context, currency string) (int32, error)
}

// MoveRepository persists moves and their lines.
type MoveRepository interface {
	// Create persists draft moves with their lines, in order.
	Create(ctx context.Context, tx Transaction, moves []*domain.Move) ([]*domain.Move, error)
	Post(ctx context.Context, tx Transaction, moves []*domain.Move) error
	Delete(ctx context.Context, tx Transaction, moves []*domain.Move) error
	// Cancel creates (but does not post) the move negating a posted move.
	Cancel(ctx context.Context, tx Transaction, move *domain.Move) (*domain.Move, error)
	GetByID(ctx context.Context, id string) (*domain.Move, error)
}

// ReconciliationRepository creates and removes reconciliations.
type ReconciliationRepository interface {
	Reconcile(ctx context.Context, tx Transaction, lines []*domain.Line) (*domain.Reconciliation, error)
	// Delete removes reconciliations and frees every line they held.
	Delete(ctx context.Context, tx Transaction, ids []string) error
}

// PaymentRepository loads payments and records their move references.
type PaymentRepository interface {
	// GetByIDsForUpdate locks and loads payments with their journal, source
	// line and moves, in the order of ids.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	SetProcessingMove(ctx context.Context, tx Transaction, paymentID, moveID string) error
	SetClearingMove(ctx context.Context, tx Transaction, paymentID, moveID string) error
	ClearProcessingMove(ctx context.Context, tx Transaction, paymentIDs []string) error
	ClearClearingMove(ctx context.Context, tx Transaction, paymentIDs []string) error
}

// PaymentTransitions is the base workflow bookkeeping the engine extends.
type PaymentTransitions interface {
	// Process moves payments to processing and returns the group they joined.
	Process(ctx context.Context, tx Transaction, payments []*domain.Payment, group string) (string, error)
	Succeed(ctx context.Context, tx Transaction, payments []*domain.Payment) error
	Fail(ctx context.Context, tx Transaction, payments []*domain.Payment) error
}

// ClearingMoveFactory builds the clearing move of a payment, nil when the
// payment has nothing to clear.
type ClearingMoveFactory interface {
	CreateClearingMove(ctx context.Context, tx Transaction, payment *domain.Payment, date *time.Time) (*domain.Move, error)
}

// StatementLineBase is the base statement line behaviour the engine extends.
type StatementLineBase interface {
	OnChangeInvoice(ctx context.Context, line *domain.StatementLine) (domain.ChangeSet, error)
	OnChangePayment(ctx context.Context, line *domain.StatementLine) (domain.ChangeSet, error)
	CreateMove(ctx context.Context, tx Transaction, line *domain.StatementLine) (*domain.Move, error)
}

// StatementLineRepository loads statement lines with their payment.
type StatementLineRepository interface {
	GetByID(ctx context.Context, tx Transaction, id string) (*domain.StatementLine, error)
	SetMove(ctx context.Context, tx Transaction, lineID, moveID string) error
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	CheckConsistency(ctx context.Context) (totalDebit, totalCredit decimal.Decimal, err error)
	UnbalancedMoves(ctx context.Context, limit int) ([]string, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not complete, so it can be retried.
	Release(ctx context.Context, key string) error
}
