package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/metrics"
	"github.com/iho/payproc/internal/usecase"
	"github.com/iho/payproc/internal/usecase/mocks"
)

func TestRateConverter_SameCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := mocks.NewMockRateRepository(ctrl)

	c := usecase.NewRateConverter(rates, nil, 0, zerolog.Nop(), nil)
	got, err := c.Convert(context.Background(), "EUR", decimal.RequireFromString("12.345"), "EUR", today)
	require.NoError(t, err)
	requireDecimal(t, "12.345", got)
}

func TestRateConverter_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := mocks.NewMockRateRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	asOf := time.Date(2026, 3, 2, 17, 45, 0, 0, time.UTC)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), "rate:USD:EUR:2026-03-02").Return("", errors.New("redis: nil")),
		rates.EXPECT().RateAsOf(gomock.Any(), "USD", "EUR", paymentDate).Return(decimal.RequireFromString("0.333333"), nil),
		cache.EXPECT().Set(gomock.Any(), "rate:USD:EUR:2026-03-02", "0.333333", time.Hour).Return(nil),
	)
	rates.EXPECT().Digits(gomock.Any(), "EUR").Return(int32(2), nil)

	c := usecase.NewRateConverter(rates, cache, time.Hour, zerolog.Nop(), m)
	got, err := c.Convert(context.Background(), "USD", decimal.NewFromInt(10), "EUR", asOf)
	require.NoError(t, err)

	requireDecimal(t, "3.33", got)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateCacheMisses))
}

func TestRateConverter_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := mocks.NewMockRateRepository(ctrl)
	cache := mocks.NewMockCache(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	cache.EXPECT().Get(gomock.Any(), "rate:USD:JPY:2026-03-10").Return("150.5", nil)
	rates.EXPECT().Digits(gomock.Any(), "JPY").Return(int32(0), nil)

	c := usecase.NewRateConverter(rates, cache, time.Hour, zerolog.Nop(), m)
	got, err := c.Convert(context.Background(), "USD", decimal.RequireFromString("2.5"), "JPY", today)
	require.NoError(t, err)

	requireDecimal(t, "376", got)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RateCacheHits))
}

func TestRateConverter_Errors(t *testing.T) {
	t.Run("missing rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rates := mocks.NewMockRateRepository(ctrl)
		rates.EXPECT().RateAsOf(gomock.Any(), "USD", "EUR", today).Return(decimal.Zero, domain.ErrRateNotFound)

		c := usecase.NewRateConverter(rates, nil, time.Hour, zerolog.Nop(), nil)
		_, err := c.Convert(context.Background(), "USD", decimal.NewFromInt(1), "EUR", today)
		assert.ErrorIs(t, err, domain.ErrRateNotFound)
		assert.Contains(t, err.Error(), "2026-03-10")
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rates := mocks.NewMockRateRepository(ctrl)
		cache := mocks.NewMockCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", errors.New("miss"))
		rates.EXPECT().RateAsOf(gomock.Any(), "USD", "EUR", today).Return(decimal.NewFromInt(2), nil)
		cache.EXPECT().Set(gomock.Any(), gomock.Any(), "2", gomock.Any()).Return(errors.New("redis down"))
		rates.EXPECT().Digits(gomock.Any(), "EUR").Return(int32(2), nil)

		c := usecase.NewRateConverter(rates, cache, time.Hour, zerolog.Nop(), nil)
		got, err := c.Convert(context.Background(), "USD", decimal.NewFromInt(100), "EUR", today)
		require.NoError(t, err)
		requireDecimal(t, "200", got)
	})
}
