package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/kirana-ledger/internal/adapter"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/mock"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/models"
)

func usdRates() models.ExchangeRates {
	return models.ExchangeRates{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"INR": decimal.RequireFromString("83.123456"),
			"EUR": decimal.RequireFromString("0.92"),
		},
	}
}

func newTestCurrencySvc(t *testing.T) (CurrencyService, *mock.MockRatesProvider, *store.MemoryRateCache) {
	t.Helper()
	provider := mock.NewMockRatesProvider(gomock.NewController(t))
	cache := store.NewMemoryRateCache(time.Now)
	return NewCurrencyService(provider, cache, time.Hour, logger.Nop()), provider, cache
}

func TestCurrencyService_ConversionRate_SameCurrency(t *testing.T) {
	svc, _, _ := newTestCurrencySvc(t)

	rate, err := svc.ConversionRate(context.Background(), "inr", "INR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(1)))
}

func TestCurrencyService_ConversionRate_RoundsToFourPlaces(t *testing.T) {
	svc, provider, _ := newTestCurrencySvc(t)

	provider.EXPECT().LatestRates(gomock.Any(), "USD").Return(usdRates(), nil)

	rate, err := svc.ConversionRate(context.Background(), "usd", "INR")
	require.NoError(t, err)
	assert.Equal(t, "83.1235", rate.String())
}

func TestCurrencyService_ConversionRate_CachesPerBase(t *testing.T) {
	svc, provider, _ := newTestCurrencySvc(t)

	provider.EXPECT().LatestRates(gomock.Any(), "USD").Return(usdRates(), nil).Times(1)

	for range 3 {
		_, err := svc.ConversionRate(context.Background(), "USD", "EUR")
		require.NoError(t, err)
	}
}

func TestCurrencyService_ConversionRate_UsesWarmCache(t *testing.T) {
	svc, _, cache := newTestCurrencySvc(t)

	require.NoError(t, cache.SetRates(context.Background(), usdRates(), time.Hour))

	rate, err := svc.ConversionRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.String())
}

func TestCurrencyService_ConversionRate_Errors(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		target      string
		fetches     bool
		providerErr error
		wantErr     error
	}{
		{name: "malformed source", source: "US", target: "INR", wantErr: ErrUnsupportedCurrency},
		{name: "source with digit", source: "usd1", target: "INR", wantErr: ErrUnsupportedCurrency},
		{name: "malformed target", source: "USD", target: "RUPEE", wantErr: ErrUnsupportedCurrency},
		{name: "unsupported base", source: "XXX", target: "INR", fetches: true, providerErr: adapter.ErrUnsupportedBase, wantErr: ErrUnsupportedCurrency},
		{name: "upstream down", source: "USD", target: "INR", fetches: true, providerErr: adapter.ErrRatesUnavailable, wantErr: adapter.ErrRatesUnavailable},
		{name: "missing target", source: "USD", target: "JPY", fetches: true, wantErr: ErrUnsupportedCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, provider, _ := newTestCurrencySvc(t)
			if tt.fetches {
				provider.EXPECT().LatestRates(gomock.Any(), tt.source).Return(usdRates(), tt.providerErr)
			}

			_, err := svc.ConversionRate(context.Background(), tt.source, tt.target)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCurrencyService_ToCommon(t *testing.T) {
	svc, provider, _ := newTestCurrencySvc(t)

	provider.EXPECT().LatestRates(gomock.Any(), "USD").Return(usdRates(), nil)

	amount, err := svc.ToCommon(context.Background(), decimal.RequireFromString("10.5"), "USD")
	require.NoError(t, err)
	// 10.5 * 83.1235
	assert.Equal(t, "872.7968", amount.String())
}

func TestCurrencyService_ConcurrentMissesShareOneFetch(t *testing.T) {
	svc, provider, _ := newTestCurrencySvc(t)

	release := make(chan struct{})
	provider.EXPECT().LatestRates(gomock.Any(), "USD").DoAndReturn(
		func(ctx context.Context, base string) (models.ExchangeRates, error) {
			<-release
			return usdRates(), nil
		},
	).Times(1)

	const callers = 8
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		errs    = make(chan error, callers)
	)
	started.Add(callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			_, err := svc.ConversionRate(context.Background(), "USD", "INR")
			errs <- err
		}()
	}
	started.Wait()
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

type failingRateCache struct{}

func (failingRateCache) GetRates(context.Context, string) (models.ExchangeRates, bool, error) {
	return models.ExchangeRates{}, false, errors.New("redis down")
}

func (failingRateCache) SetRates(context.Context, models.ExchangeRates, time.Duration) error {
	return errors.New("redis down")
}

func TestCurrencyService_CacheFailureFallsThrough(t *testing.T) {
	provider := mock.NewMockRatesProvider(gomock.NewController(t))
	svc := NewCurrencyService(provider, failingRateCache{}, time.Hour, logger.Nop())

	provider.EXPECT().LatestRates(gomock.Any(), "USD").Return(usdRates(), nil)

	rate, err := svc.ConversionRate(context.Background(), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.92", rate.String())
}
