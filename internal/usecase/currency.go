package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/payproc/internal/infrastructure/metrics"
)

// RateConverter implements CurrencyConverter on top of stored rates,
// caching the rate of each currency pair per day.
type RateConverter struct {
	rates   RateRepository
	cache   Cache
	ttl     time.Duration
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewRateConverter creates a new RateConverter. cache may be nil.
func NewRateConverter(rates RateRepository, cache Cache, ttl time.Duration, logger zerolog.Logger, m *metrics.Metrics) *RateConverter {
	if ttl <= 0 {
		ttl = DefaultRateCacheTTL
	}

	return &RateConverter{
		rates:   rates,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// Convert converts amount from one currency to another using the rate valid
// at asOf, rounded to the precision of the target currency.
func (c *RateConverter) Convert(ctx context.Context, from string, amount decimal.Decimal, to string, asOf time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}

	rate, err := c.rate(ctx, from, to, truncateDate(asOf))
	if err != nil {
		return decimal.Zero, err
	}

	digits, err := c.rates.Digits(ctx, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("currency %s precision: %w", to, err)
	}

	return amount.Mul(rate).Round(digits), nil
}

func (c *RateConverter) rate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	key := rateCacheKey(from, to, date)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err == nil {
			if rate, parseErr := decimal.NewFromString(cached); parseErr == nil {
				if c.metrics != nil {
					c.metrics.RateCacheHits.Inc()
				}
				return rate, nil
			}
		}
		if c.metrics != nil {
			c.metrics.RateCacheMisses.Inc()
		}
	}

	rate, err := c.rates.RateAsOf(ctx, from, to, date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate %s/%s at %s: %w", from, to, date.Format(time.DateOnly), err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, rate.String(), c.ttl); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to cache currency rate")
		}
	}

	return rate, nil
}

func rateCacheKey(from, to string, date time.Time) string {
	return "rate:" + from + ":" + to + ":" + date.Format(time.DateOnly)
}
