package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrEmptyBatch     = errors.New("at least one payment is required")
	ErrBatchTooLarge  = errors.New("too many payments in one batch")
	ErrDuplicateID    = errors.New("duplicate ID in batch")
)

// Validation constants
const (
	MaxPaymentAmount = "1000000000000" // 1 trillion
	MaxBatchSize     = 500
)

// ValidateAmount validates a payment amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxPaymentAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxPaymentAmount)
	}

	return nil
}

// ValidateBatch checks a list of payment IDs submitted for one transition.
// Order is preserved by callers, so duplicates are rejected rather than dropped.
func ValidateBatch(ids []string) error {
	if len(ids) == 0 {
		return ErrEmptyBatch
	}

	if len(ids) > MaxBatchSize {
		return fmt.Errorf("%w: maximum is %d", ErrBatchTooLarge, MaxBatchSize)
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = true
	}

	return nil
}

// ValidateChangeField validates the statement line field that was edited.
func ValidateChangeField(field string) error {
	switch field {
	case StatementFieldInvoice, StatementFieldPayment:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownChangeField, field)
	}
}
