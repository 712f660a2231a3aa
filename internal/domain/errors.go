package domain

import "errors"

var (
	// Ledger errors
	ErrMoveNotFound   = errors.New("move not found")
	ErrPeriodNotFound = errors.New("no open period for date")
	ErrUnbalancedMove = errors.New("move is not balanced: debits do not equal credits")
	ErrInvalidLine    = errors.New("line amounts must be non-negative")
	ErrMovePosted     = errors.New("move is already posted")
	ErrMoveNotPosted  = errors.New("move is not posted")

	// Reconciliation errors
	ErrReconciliationNotFound = errors.New("reconciliation not found")
	ErrUnbalancedReconcile    = errors.New("lines to reconcile do not net to zero")
	ErrLineAlreadyReconciled  = errors.New("line is already reconciled")
	ErrEmptyReconciliation    = errors.New("reconciliation needs at least one line")

	// Payment errors
	ErrPaymentNotFound            = errors.New("payment not found")
	ErrInvalidAmount              = errors.New("amount must be positive")
	ErrInvalidPaymentKind         = errors.New("invalid payment kind")
	ErrInvalidTransition          = errors.New("invalid payment state transition")
	ErrIncompleteProcessingConfig = errors.New("processing account and processing journal must be set together")
	ErrInvalidClearingPercent     = errors.New("clearing percent must be in (0, 1]")
	ErrRateNotFound               = errors.New("no currency rate for date")
	ErrCurrencyNotFound           = errors.New("currency not found")

	// Statement errors
	ErrStatementLineNotFound = errors.New("statement line not found")
	ErrUnknownChangeField    = errors.New("unknown statement line field")
	ErrMissingStatementData  = errors.New("statement line needs an account and a bank account")
)
