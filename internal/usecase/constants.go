package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultRateCacheTTL is how long a currency rate for a given day is cached
	DefaultRateCacheTTL = 6 * time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is the value stored for a key whose request is in flight
	IdempotencyPending = "processing"
)

// Transition names used in logs and metrics.
const (
	TransitionProcess = "process"
	TransitionSucceed = "succeed"
	TransitionFail    = "fail"
)
