package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/kirana-ledger/internal/config"
	"github.com/MKhiriev/kirana-ledger/internal/logger"
	"github.com/MKhiriev/kirana-ledger/internal/utils"
	"github.com/MKhiriev/kirana-ledger/models"
)

const basePathParam = "base"

type httpRatesProvider struct {
	client   *utils.HTTPClient
	ratesURL string

	logger *logger.Logger
}

// NewHTTPRatesProvider constructs the resty implementation of
// [RatesProvider]. cfg.RatesURL must be an absolute URL containing the
// "{base}" placeholder, e.g. https://api.exchangerate-api.com/v4/latest/{base}.
func NewHTTPRatesProvider(cfg config.Adapter, logger *logger.Logger) (RatesProvider, error) {
	ratesURL, err := normalizeRatesURL(cfg.RatesURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter rates url: %w", err)
	}

	return &httpRatesProvider{
		client:   utils.NewHTTPClient(cfg.RequestTimeout),
		ratesURL: ratesURL,
		logger:   logger,
	}, nil
}

func normalizeRatesURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "{"+basePathParam+"}") {
		return "", fmt.Errorf("address must contain {%s}", basePathParam)
	}

	u, err := url.Parse(strings.ReplaceAll(raw, "{"+basePathParam+"}", basePathParam))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return raw, nil
}

// LatestRates implements [RatesProvider]. The base currency is substituted
// into the configured URL; the response must be {"base": ..., "rates": {...}}.
func (h *httpRatesProvider) LatestRates(ctx context.Context, base string) (models.ExchangeRates, error) {
	log := logger.FromContext(ctx)
	base = strings.ToUpper(strings.TrimSpace(base))

	var rates models.ExchangeRates
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam(basePathParam, base).
		ForceContentType("application/json").
		SetResult(&rates).
		Get(h.ratesURL)
	if err != nil {
		log.Err(err).Str("func", "*httpRatesProvider.LatestRates").Str("base", base).Msg("rates request failed")
		return models.ExchangeRates{}, fmt.Errorf("%w: %w", ErrRatesUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).Str("func", "*httpRatesProvider.LatestRates").Str("base", base).Msg("rates api returned an error")
		return models.ExchangeRates{}, err
	}
	if len(rates.Rates) == 0 {
		return models.ExchangeRates{}, fmt.Errorf("%w: empty rates table", ErrRatesUnavailable)
	}
	if rates.Base == "" {
		rates.Base = base
	}

	return rates, nil
}
