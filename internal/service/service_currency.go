package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/kirana-ledger/internal/adapter"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/store"
	"github.com/MKhiriev/kirana-ledger/internal/validators"
	"github.com/MKhiriev/kirana-ledger/models"
)

// rateScale is the number of decimal places of a conversion rate.
const rateScale = 4

// currencyService converts amounts using rate tables from a
// [adapter.RatesProvider], cached per base currency. Concurrent misses for
// the same base share a single upstream request.
type currencyService struct {
	ratesProvider adapter.RatesProvider
	rateCache     store.RateCache
	cacheTTL      time.Duration

	group singleflight.Group

	logger *logger.Logger
}

func NewCurrencyService(ratesProvider adapter.RatesProvider, rateCache store.RateCache, cacheTTL time.Duration, logger *logger.Logger) CurrencyService {
	return &currencyService{
		ratesProvider: ratesProvider,
		rateCache:     rateCache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

func (s *currencyService) ConversionRate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	source, target = normalizeCurrency(source), normalizeCurrency(target)
	if !validators.IsCurrencyCode(source) || !validators.IsCurrencyCode(target) {
		return decimal.Zero, fmt.Errorf("%w: %q -> %q", ErrUnsupportedCurrency, source, target)
	}
	if source == target {
		return decimal.NewFromInt(1), nil
	}

	rates, err := s.rates(ctx, source)
	if err != nil {
		return decimal.Zero, err
	}

	sourceRate, okSource := rates.Rates[source]
	targetRate, okTarget := rates.Rates[target]
	if !okSource || !okTarget || sourceRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s -> %s", ErrUnsupportedCurrency, source, target)
	}

	// Round is half away from zero, which is half-up for positive rates
	return targetRate.Div(sourceRate).Round(rateScale), nil
}

func (s *currencyService) ToCommon(ctx context.Context, amount decimal.Decimal, source string) (decimal.Decimal, error) {
	rate, err := s.ConversionRate(ctx, source, models.CommonCurrency)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(rateScale), nil
}

func (s *currencyService) rates(ctx context.Context, base string) (models.ExchangeRates, error) {
	log := logger.FromContext(ctx)

	cached, found, err := s.rateCache.GetRates(ctx, base)
	if err != nil {
		log.Warn().Err(err).Str("func", "*currencyService.rates").Str("base", base).Msg("rate cache read failed")
	}
	if found {
		return cached, nil
	}

	// the shared call outlives any single caller's cancellation
	fetchCtx := context.WithoutCancel(ctx)
	v, err, shared := s.group.Do(base, func() (any, error) {
		rates, err := s.ratesProvider.LatestRates(fetchCtx, base)
		if err != nil {
			return models.ExchangeRates{}, err
		}
		if err := s.rateCache.SetRates(fetchCtx, rates, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("func", "*currencyService.rates").Str("base", base).Msg("rate cache write failed")
		}
		return rates, nil
	})
	if err != nil {
		if errors.Is(err, adapter.ErrUnsupportedBase) {
			return models.ExchangeRates{}, fmt.Errorf("%w: %w", ErrUnsupportedCurrency, err)
		}
		return models.ExchangeRates{}, fmt.Errorf("error fetching rates: %w", err)
	}

	log.Debug().Str("func", "*currencyService.rates").Str("base", base).Bool("shared", shared).Msg("rates fetched")
	return v.(models.ExchangeRates), nil
}

func normalizeCurrency(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
