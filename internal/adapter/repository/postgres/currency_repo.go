package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/domain"
)

// CurrencyRepository implements usecase.RateRepository.
type CurrencyRepository struct {
	db DB
}

// NewCurrencyRepository creates a new CurrencyRepository.
func NewCurrencyRepository(db DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

// RateAsOf returns the latest from->to rate effective on or before date.
func (r *CurrencyRepository) RateAsOf(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	var rate pgtype.Numeric

	err := r.db.QueryRow(ctx, `
		SELECT rate FROM currency_rates
		WHERE from_currency = $1 AND to_currency = $2 AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1`,
		from, to, timeToPgDate(date),
	).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrRateNotFound
		}
		return decimal.Zero, err
	}

	return numericToDecimal(rate), nil
}

// Digits returns the number of decimal places amounts in currency carry.
func (r *CurrencyRepository) Digits(ctx context.Context, currency string) (int32, error) {
	var digits int32

	err := r.db.QueryRow(ctx, `SELECT digits FROM currencies WHERE code = $1`, currency).Scan(&digits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("currency %s: %w", currency, domain.ErrCurrencyNotFound)
		}
		return 0, err
	}

	return digits, nil
}
