// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for third-party services the ledger
// depends on.
//
// The only one today is the exchange-rate API behind [RatesProvider]. Error
// values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] without looking at
// transport details.
package adapter

import (
	"context"

	"github.com/MKhiriev/kirana-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/rates_provider_mock.go -package=mock

// RatesProvider fetches the latest exchange rates for a base currency.
type RatesProvider interface {
	// LatestRates returns how much one unit of base is worth in every
	// currency the provider knows. Returns [ErrUnsupportedBase] or
	// [ErrRatesUnavailable] (wrapped) on failure.
	LatestRates(ctx context.Context, base string) (models.ExchangeRates, error)
}
